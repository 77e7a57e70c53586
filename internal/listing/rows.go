package listing

import (
	"strconv"
	"unicode/utf8"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/shopspring/decimal"
)

// Row pairs an item with its 1-based position across the whole listing.
type Row[T any] struct {
	Rank int
	Item T
}

// DisplayRows numbers items relative to the page they came from, keeping the server order.
func DisplayRows[T any](items []T, currentPage, perPage int) []Row[T] {
	offset := (currentPage - 1) * perPage
	rows := make([]Row[T], len(items))
	for i, it := range items {
		rows[i] = Row[T]{Rank: offset + i + 1, Item: it}
	}
	return rows
}

// CustomerRow is the presentation-neutral description of one listing row.
// Amounts stay decimals; formatting them is the renderer's job.
type CustomerRow struct {
	Rank        int             `json:"rank"`
	ID          int64           `json:"id"`
	Initial     string          `json:"initial"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	TotalDebt   decimal.Decimal `json:"total_debt"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Remaining   decimal.Decimal `json:"remaining_balance"`
	Outstanding bool            `json:"outstanding"`
	PaidOff     bool            `json:"is_paid_off"`
	StatusLabel string          `json:"status_label"`
	DetailsPath string          `json:"details_path"`
}

// RowView maps a ranked customer onto its row description.
func RowView(r Row[model.CustomerSummary]) CustomerRow {
	c := r.Item
	return CustomerRow{
		Rank:        r.Rank,
		ID:          c.ID,
		Initial:     initial(c.Name),
		Name:        c.Name,
		Phone:       c.Phone,
		TotalDebt:   c.TotalDebt,
		TotalPaid:   c.TotalPaid,
		Remaining:   c.RemainingBalance,
		Outstanding: c.Outstanding(),
		PaidOff:     c.IsPaidOff,
		StatusLabel: StatusLabel(c.IsPaidOff),
		DetailsPath: DetailsPath(c.ID),
	}
}

// Badge texts of the status column.
const (
	StatusPaidOff = "مسدد"
	StatusPending = "متبقي"
)

// StatusLabel follows the backend's is_paid_off flag, not the local balance.
func StatusLabel(paidOff bool) string {
	if paidOff {
		return StatusPaidOff
	}
	return StatusPending
}

// DetailsPath is the console route of a customer's details page.
func DetailsPath(id int64) string {
	return "/customer/" + strconv.FormatInt(id, 10)
}

func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(r)
}
