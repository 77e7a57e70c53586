// Package service holds the console's use cases between the front-ends and the backend repositories.
// Kept intentionally lean: only use-case coordination, form parsing and notice shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a submitted form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// Severity of a Notice.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is the one-line outcome of an action, shown as a toast or status line.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// OK reports whether the action succeeded, i.e. the front-end should refresh.
func (n Notice) OK() bool { return n.Severity == SeveritySuccess }

// CustomerDetails is the customer page: the summary plus its ledger, newest first.
type CustomerDetails struct {
	Customer     model.CustomerSummary `json:"customer"`
	Transactions []model.Transaction   `json:"transactions"`
}

// ViewService covers the read side: everything a page render needs.
type ViewService interface {
	Listing(ctx context.Context, p repository.Page) (listing.View, error)
	Dashboard(ctx context.Context) (dashboard.Cards, error)
	Customer(ctx context.Context, id int64) (CustomerDetails, error)
}

// ActionService covers mutations. Each returns the Notice to show; the error is
// non-nil exactly when the Notice is an error and is meant for logs and status codes.
type ActionService interface {
	AddCustomer(ctx context.Context, f CustomerForm) (Notice, error)
	UpdateCustomer(ctx context.Context, id int64, f CustomerForm) (Notice, error)
	DeleteCustomer(ctx context.Context, id int64) (Notice, error)
	AddDebt(ctx context.Context, customerID int64, f EntryForm) (Notice, error)
	PayInstallment(ctx context.Context, customerID int64, f EntryForm) (Notice, error)
	DeleteTransaction(ctx context.Context, id int64) (Notice, error)
}
