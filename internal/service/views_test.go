package service_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViews(t *testing.T, customers *fakeCustomerRepo, ledger *fakeLedgerRepo, reports *fakeReportRepo) service.ViewService {
	t.Helper()
	f, err := dashboard.NewFormatter("en", "IQD")
	require.NoError(t, err)
	return service.NewViewService(customers, ledger, reports, f, 7, zerolog.New(io.Discard))
}

func TestListing_NormalizesPage(t *testing.T) {
	customers := newFakeCustomerRepo()
	customers.listRes = model.PageResult[model.CustomerSummary]{Items: []model.CustomerSummary{}, CurrentPage: 1, PerPage: 7}
	svc := newViews(t, customers, &fakeLedgerRepo{}, &fakeReportRepo{})

	v, err := svc.Listing(context.Background(), repository.Page{Number: -3, Search: "  Ali "})
	require.NoError(t, err)
	assert.Equal(t, repository.Page{Number: 1, PerPage: 7, Search: "Ali"}, customers.lastPage)
	assert.True(t, v.Empty)
	assert.Equal(t, "Ali", v.State.Search)
}

func TestListing_BuildsRankedRows(t *testing.T) {
	customers := newFakeCustomerRepo()
	customers.listRes = model.PageResult[model.CustomerSummary]{
		Items: []model.CustomerSummary{
			{ID: 9, Name: "Ali", RemainingBalance: decimal.NewFromInt(5)},
			{ID: 8, Name: "Sara"},
		},
		Total: 16, TotalPages: 3, CurrentPage: 3, PerPage: 7,
	}
	svc := newViews(t, customers, &fakeLedgerRepo{}, &fakeReportRepo{})

	v, err := svc.Listing(context.Background(), repository.Page{Number: 3, PerPage: 7})
	require.NoError(t, err)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, 15, v.Rows[0].Rank)
	assert.Equal(t, 16, v.Rows[1].Rank)
	assert.Equal(t, 15, v.Start)
	assert.Equal(t, 16, v.End)
}

func TestListing_PropagatesBackendError(t *testing.T) {
	customers := newFakeCustomerRepo()
	customers.err = fmt.Errorf("x: %w", repository.ErrUnavailable)
	svc := newViews(t, customers, &fakeLedgerRepo{}, &fakeReportRepo{})

	_, err := svc.Listing(context.Background(), repository.Page{Number: 1})
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestDashboard_FormatsCards(t *testing.T) {
	reports := &fakeReportRepo{sum: model.Summary{
		TotalCustomers: 4,
		TotalDebt:      decimal.NewFromInt(400),
		TotalPaid:      decimal.NewFromInt(100),
		TotalRemaining: decimal.NewFromInt(300),
	}}
	svc := newViews(t, newFakeCustomerRepo(), &fakeLedgerRepo{}, reports)

	cards, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25.0%", cards.CollectionRate)
	assert.Equal(t, "4", cards.TotalCustomers)
}

func TestCustomer_Details(t *testing.T) {
	customers := newFakeCustomerRepo()
	customers.items[5] = model.CustomerSummary{ID: 5, Name: "Ali"}
	ledger := &fakeLedgerRepo{txs: []model.Transaction{{ID: 1, CustomerID: 5, Type: model.TransactionDebt}}}
	svc := newViews(t, customers, ledger, &fakeReportRepo{})

	d, err := svc.Customer(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ali", d.Customer.Name)
	assert.Len(t, d.Transactions, 1)

	_, err = svc.Customer(context.Background(), 6)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Customer(context.Background(), 0)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
