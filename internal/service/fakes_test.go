package service_test

import (
	"context"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

type fakeCustomerRepo struct {
	items     map[int64]model.CustomerSummary
	listRes   model.PageResult[model.CustomerSummary]
	err       error
	msg       string
	lastPage  repository.Page
	lastNew   model.NewCustomer
	lastPatch model.CustomerPatch
	calls     int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: map[int64]model.CustomerSummary{}}
}

func (f *fakeCustomerRepo) List(_ context.Context, p repository.Page) (model.PageResult[model.CustomerSummary], error) {
	f.calls++
	f.lastPage = p
	return f.listRes, f.err
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (model.CustomerSummary, error) {
	f.calls++
	c, ok := f.items[id]
	if !ok {
		return model.CustomerSummary{}, &repository.APIError{Status: 404}
	}
	return c, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c model.NewCustomer) (string, error) {
	f.calls++
	f.lastNew = c
	return f.msg, f.err
}

func (f *fakeCustomerRepo) Update(_ context.Context, _ int64, p model.CustomerPatch) (string, error) {
	f.calls++
	f.lastPatch = p
	return f.msg, f.err
}

func (f *fakeCustomerRepo) Delete(_ context.Context, _ int64) (string, error) {
	f.calls++
	return f.msg, f.err
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

type fakeLedgerRepo struct {
	txs       []model.Transaction
	err       error
	msg       string
	lastEntry model.LedgerEntry
	calls     int
}

func (f *fakeLedgerRepo) ListByCustomer(_ context.Context, _ int64) ([]model.Transaction, error) {
	f.calls++
	return f.txs, f.err
}

func (f *fakeLedgerRepo) AddDebt(_ context.Context, _ int64, e model.LedgerEntry) (string, error) {
	f.calls++
	f.lastEntry = e
	return f.msg, f.err
}

func (f *fakeLedgerRepo) PayInstallment(_ context.Context, _ int64, e model.LedgerEntry) (string, error) {
	f.calls++
	f.lastEntry = e
	return f.msg, f.err
}

func (f *fakeLedgerRepo) Delete(_ context.Context, _ int64) (string, error) {
	f.calls++
	return f.msg, f.err
}

var _ repository.LedgerRepository = (*fakeLedgerRepo)(nil)

type fakeReportRepo struct {
	sum model.Summary
	err error
}

func (f *fakeReportRepo) Summary(context.Context) (model.Summary, error) { return f.sum, f.err }

var _ repository.ReportRepository = (*fakeReportRepo)(nil)
