// Package model contains the data shapes exchanged with the bookkeeping backend.
// I keep it lean and focused on data shapes without behavior.
package model

import "github.com/shopspring/decimal"

// Transaction types as the backend spells them.
const (
	TransactionDebt    = "debt"
	TransactionPayment = "payment"
)

// CustomerSummary is one row of the customer listing.
// RemainingBalance is expected to equal TotalDebt - TotalPaid; the backend owns that invariant.
type CustomerSummary struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	InitialDebt      decimal.Decimal `json:"initial_debt"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IsPaidOff        bool            `json:"is_paid_off"`
	CreatedAt        string          `json:"created_at"`
}

// Outstanding reports whether the customer still owes money.
func (c CustomerSummary) Outstanding() bool {
	return c.RemainingBalance.GreaterThan(decimal.Zero)
}

// Transaction is a single debt or payment entry on a customer's ledger.
type Transaction struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"transaction_type"`
	TypeLabel  string          `json:"transaction_type_ar"`
	Desc       string          `json:"description"`
	CreatedAt  string          `json:"created_at"`
}

// IsPayment reports whether the entry reduced the balance.
func (t Transaction) IsPayment() bool { return t.Type == TransactionPayment }

// Summary holds the aggregate totals from the reports endpoint.
type Summary struct {
	TotalCustomers   int             `json:"total_customers"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalRemaining   decimal.Decimal `json:"total_remaining"`
	PaidOffCustomers int             `json:"paid_off_customers"`
	ActiveCustomers  int             `json:"active_customers"`
}

// PageResult is one page of a server-side paginated listing.
// It is replaced wholesale on every fetch and never patched in place.
type PageResult[T any] struct {
	Items       []T
	Total       int
	TotalPages  int
	CurrentPage int
	PerPage     int
	HasNext     bool
	HasPrev     bool
}

// NewCustomer is the payload for registering a customer.
type NewCustomer struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	InitialDebt decimal.Decimal `json:"initial_debt"`
}

// CustomerPatch updates contact details; nil fields are left untouched.
type CustomerPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// LedgerEntry is the payload for adding a debt or paying an installment.
type LedgerEntry struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
