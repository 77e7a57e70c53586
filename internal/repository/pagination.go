package repository

import (
	"net/url"
	"strconv"
)

// Page identifies one page of the customer listing on the backend.
// Search is sent as-is; trimming belongs to the caller.
type Page struct {
	Number  int
	PerPage int
	Search  string
}

// Values builds the listing query. url.Values encodes keys in sorted order,
// so the same page always yields the same query string.
func (p Page) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Number))
	v.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// Query is the encoded form of Values, e.g. "page=2&per_page=7&search=Ali".
func (p Page) Query() string { return p.Values().Encode() }
