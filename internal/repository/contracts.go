package repository

import (
	"context"

	"github.com/maxviazov/installment-console/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from the backend transport.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CustomerRepository declares the customer operations the backend exposes.
// Mutations return the backend's confirmation message.
type CustomerRepository interface {
	List(ctx context.Context, p Page) (model.PageResult[model.CustomerSummary], error)
	GetByID(ctx context.Context, id int64) (model.CustomerSummary, error)
	Create(ctx context.Context, c model.NewCustomer) (string, error)
	Update(ctx context.Context, id int64, patch model.CustomerPatch) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// LedgerRepository declares debt and payment operations on a customer's ledger.
type LedgerRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Transaction, error)
	AddDebt(ctx context.Context, customerID int64, e model.LedgerEntry) (string, error)
	PayInstallment(ctx context.Context, customerID int64, e model.LedgerEntry) (string, error)
	Delete(ctx context.Context, transactionID int64) (string, error)
}

// ReportRepository declares the aggregate report reads.
type ReportRepository interface {
	Summary(ctx context.Context) (model.Summary, error)
}
