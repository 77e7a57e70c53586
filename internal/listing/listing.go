// Package listing is the view-model behind the paged customer listing.
//
// Everything here is a pure function of the last page the backend returned
// and the page or search term the user asked for. Fetching, rendering and
// notifications live at the edges (handler, tui) and call in here.
package listing

import (
	"strings"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

// State is the listing position a render was produced from.
// It is a value; each response yields a new State rather than mutating one.
type State struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"search"`
}

// NewState starts at page 1 with no search term.
func NewState(perPage int) State {
	return State{Page: 1, PerPage: perPage}
}

// RequestPage returns the fetch for the requested page, keeping the current
// search term. Pages below 1 are a no-op and report ok=false.
func (s State) RequestPage(requested int) (repository.Page, bool) {
	if requested < 1 {
		return repository.Page{}, false
	}
	return repository.Page{Number: requested, PerPage: s.PerPage, Search: s.Search}, true
}

// SearchFor trims term and always restarts from page 1.
func (s State) SearchFor(term string) repository.Page {
	return repository.Page{Number: 1, PerPage: s.PerPage, Search: strings.TrimSpace(term)}
}

// Refresh re-fetches the current page, as done after a successful mutation.
func (s State) Refresh() repository.Page {
	page := s.Page
	if page < 1 {
		page = 1
	}
	return repository.Page{Number: page, PerPage: s.PerPage, Search: s.Search}
}

// Apply adopts the server's notion of the current page and page size from a response
// to the fetch p.
func Apply[T any](p repository.Page, res model.PageResult[T]) State {
	st := State{Page: res.CurrentPage, PerPage: res.PerPage, Search: p.Search}
	if st.Page < 1 {
		st.Page = p.Number
	}
	if st.PerPage < 1 {
		st.PerPage = p.PerPage
	}
	return st
}
