// Package render owns the console's HTML templates and the helpers they format with.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Template names, as passed to gin's c.HTML.
const (
	IndexTemplate    = "index"
	CustomerTemplate = "customer"
	ErrorTemplate    = "error"
)

// IndexPage is the dashboard plus the customer listing.
type IndexPage struct {
	Cards   dashboard.Cards
	View    listing.View
	Search  string
	Notice  *service.Notice
	Partial bool
}

// CustomerPage is one customer's details and ledger.
type CustomerPage struct {
	Customer     model.CustomerSummary
	Transactions []model.Transaction
	Notice       *service.Notice
}

// ErrorPage is shown when a page could not be produced at all.
type ErrorPage struct {
	Status  int
	Message string
}

// New parses the embedded templates with formatting bound to f.
func New(f *dashboard.Formatter) (*template.Template, error) {
	t, err := template.New("console").Funcs(Funcs(f)).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Funcs is the template function set.
func Funcs(f *dashboard.Formatter) template.FuncMap {
	return template.FuncMap{
		"money":     f.Money,
		"number":    f.Number,
		"count":     f.Int,
		"currency":  f.Currency,
		"pageURL":   PageURL,
		"linkLabel": func(l listing.Link) string { return LinkLabel(l, f) },
		"positive":  func(d decimal.Decimal) bool { return d.GreaterThan(decimal.Zero) },
	}
}

// PageURL is the console URL of a listing page, keeping the search term.
func PageURL(search string, page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if search != "" {
		v.Set("search", search)
	}
	return "/?" + v.Encode()
}

// LinkLabel is the visible text of a pagination control.
func LinkLabel(l listing.Link, f *dashboard.Formatter) string {
	switch l.Kind {
	case listing.LinkPrev:
		return "السابق"
	case listing.LinkNext:
		return "التالي"
	case listing.LinkEllipsis:
		return "…"
	default:
		return f.Int(l.Page)
	}
}
