package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

type ledgerRepository struct{ c *Client }

func NewLedgerRepository(c *Client) repository.LedgerRepository {
	return &ledgerRepository{c: c}
}

// ListByCustomer returns the customer's entries newest first, as the backend orders them.
func (r *ledgerRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Transaction, error) {
	var out []model.Transaction
	err := r.c.do(ctx, call{op: "transactions.list", method: http.MethodGet, path: customerPath(customerID) + "/transactions"}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Transaction{}
	}
	return out, nil
}

func (r *ledgerRepository) AddDebt(ctx context.Context, customerID int64, e model.LedgerEntry) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "transactions.add_debt", method: http.MethodPost, path: customerPath(customerID) + "/add-debt", body: e}, &out)
	return out.Message, err
}

func (r *ledgerRepository) PayInstallment(ctx context.Context, customerID int64, e model.LedgerEntry) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "transactions.pay_installment", method: http.MethodPost, path: customerPath(customerID) + "/pay-installment", body: e}, &out)
	return out.Message, err
}

func (r *ledgerRepository) Delete(ctx context.Context, transactionID int64) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "transactions.delete", method: http.MethodDelete, path: "/api/transactions/" + strconv.FormatInt(transactionID, 10)}, &out)
	return out.Message, err
}

var _ repository.LedgerRepository = (*ledgerRepository)(nil)
