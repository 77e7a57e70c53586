package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/shopspring/decimal"
)

// Repositories bundles the implementations a contract run exercises.
type Repositories struct {
	Customers repository.CustomerRepository
	Ledger    repository.LedgerRepository
	Reports   repository.ReportRepository
	Pinger    repository.Pinger
}

// Factory builds repositories backed by a fresh, empty backend.
type Factory func(t *testing.T) (Repositories, func())

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustCreate(t *testing.T, repos Repositories, name, phone, debt string) int64 {
	t.Helper()
	ctx := context.Background()
	if _, err := repos.Customers.Create(ctx, model.NewCustomer{Name: name, Phone: phone, InitialDebt: amount(debt)}); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	res, err := repos.Customers.List(ctx, repository.Page{Number: 1, PerPage: 1, Search: phone})
	if err != nil || len(res.Items) != 1 {
		t.Fatalf("find %s: %v (%d items)", name, err, len(res.Items))
	}
	return res.Items[0].ID
}

func RunCustomerRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		id := mustCreate(t, repos, "Ali", "0770", "1500.50")
		got, err := repos.Customers.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name != "Ali" || !got.TotalDebt.Equal(amount("1500.50")) || got.IsPaidOff {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		_, err := repos.Customers.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_rejected_carries_message", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		_, err := repos.Customers.Create(context.Background(), model.NewCustomer{Name: "", Phone: "1"})
		if !errors.Is(err, repository.ErrRejected) {
			t.Fatalf("expected ErrRejected, got %v", err)
		}
		if repository.ServerMessage(err) != ErrNameRequired {
			t.Fatalf("expected server message, got %q", repository.ServerMessage(err))
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		for i := 0; i < 16; i++ {
			mustCreate(t, repos, "C-"+string(rune('A'+i)), "07"+string(rune('a'+i)), "10")
		}
		res, err := repos.Customers.List(context.Background(), repository.Page{Number: 3, PerPage: 7})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 16 || res.TotalPages != 3 || res.CurrentPage != 3 || res.PerPage != 7 {
			t.Fatalf("unexpected page: %+v", res)
		}
		if res.HasNext || !res.HasPrev {
			t.Fatalf("unexpected nav flags: next=%v prev=%v", res.HasNext, res.HasPrev)
		}
	})

	t.Run("list_search_filters", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		mustCreate(t, repos, "Ali Hassan", "0771", "0")
		mustCreate(t, repos, "Sara", "0772", "0")
		res, err := repos.Customers.List(context.Background(), repository.Page{Number: 1, PerPage: 7, Search: "Ali"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || res.Items[0].Name != "Ali Hassan" {
			t.Fatalf("unexpected search result: %+v", res)
		}
	})

	t.Run("list_past_end_is_empty", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		mustCreate(t, repos, "Only", "0700", "0")
		res, err := repos.Customers.List(context.Background(), repository.Page{Number: 5, PerPage: 7})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Items == nil || res.Total != 1 {
			t.Fatalf("expected empty non-nil page, got %+v", res)
		}
	})

	t.Run("update_and_delete", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := mustCreate(t, repos, "Old", "0780", "0")
		name := "New"
		if msg, err := repos.Customers.Update(ctx, id, model.CustomerPatch{Name: &name}); err != nil || msg == "" {
			t.Fatalf("update: %q %v", msg, err)
		}
		got, err := repos.Customers.GetByID(ctx, id)
		if err != nil || got.Name != "New" || got.Phone != "0780" {
			t.Fatalf("after update: %+v %v", got, err)
		}
		if msg, err := repos.Customers.Delete(ctx, id); err != nil || msg == "" {
			t.Fatalf("delete: %q %v", msg, err)
		}
		if _, err := repos.Customers.Delete(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func RunLedgerRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("debt_and_payment_move_balance", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := mustCreate(t, repos, "Ali", "0770", "100")

		if _, err := repos.Ledger.AddDebt(ctx, id, model.LedgerEntry{Amount: amount("50")}); err != nil {
			t.Fatalf("add debt: %v", err)
		}
		if _, err := repos.Ledger.PayInstallment(ctx, id, model.LedgerEntry{Amount: amount("150"), Description: "cash"}); err != nil {
			t.Fatalf("pay: %v", err)
		}
		got, err := repos.Customers.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.TotalDebt.Equal(amount("150")) || !got.TotalPaid.Equal(amount("150")) || !got.IsPaidOff {
			t.Fatalf("unexpected balance: %+v", got)
		}

		txs, err := repos.Ledger.ListByCustomer(ctx, id)
		if err != nil || len(txs) != 2 {
			t.Fatalf("transactions: %v (%d)", err, len(txs))
		}
		if !txs[0].IsPayment() || txs[0].Desc != "cash" {
			t.Fatalf("expected newest payment first, got %+v", txs[0])
		}
	})

	t.Run("overpayment_rejected", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		id := mustCreate(t, repos, "Ali", "0770", "10")
		_, err := repos.Ledger.PayInstallment(context.Background(), id, model.LedgerEntry{Amount: amount("11")})
		if !errors.Is(err, repository.ErrRejected) || repository.ServerMessage(err) != ErrAmountTooLarge {
			t.Fatalf("expected rejection, got %v", err)
		}
	})

	t.Run("non_positive_amount_rejected", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		id := mustCreate(t, repos, "Ali", "0770", "10")
		_, err := repos.Ledger.AddDebt(context.Background(), id, model.LedgerEntry{Amount: decimal.Zero})
		if !errors.Is(err, repository.ErrRejected) {
			t.Fatalf("expected rejection, got %v", err)
		}
	})

	t.Run("delete_transaction", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := mustCreate(t, repos, "Ali", "0770", "0")
		if _, err := repos.Ledger.AddDebt(ctx, id, model.LedgerEntry{Amount: amount("5")}); err != nil {
			t.Fatalf("add debt: %v", err)
		}
		txs, err := repos.Ledger.ListByCustomer(ctx, id)
		if err != nil || len(txs) != 1 {
			t.Fatalf("transactions: %v", err)
		}
		if _, err := repos.Ledger.Delete(ctx, txs[0].ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repos.Ledger.Delete(ctx, txs[0].ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunReportRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("summary_totals", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a := mustCreate(t, repos, "A", "01", "100")
		mustCreate(t, repos, "B", "02", "300")
		if _, err := repos.Ledger.PayInstallment(ctx, a, model.LedgerEntry{Amount: amount("100")}); err != nil {
			t.Fatalf("pay: %v", err)
		}
		s, err := repos.Reports.Summary(ctx)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if s.TotalCustomers != 2 || s.PaidOffCustomers != 1 || s.ActiveCustomers != 1 {
			t.Fatalf("unexpected counts: %+v", s)
		}
		if !s.TotalDebt.Equal(amount("400")) || !s.TotalPaid.Equal(amount("100")) || !s.TotalRemaining.Equal(amount("300")) {
			t.Fatalf("unexpected totals: %+v", s)
		}
	})

	t.Run("ping", func(t *testing.T) {
		repos, cleanup := makeRepos(t)
		t.Cleanup(cleanup)
		if err := repos.Pinger.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
