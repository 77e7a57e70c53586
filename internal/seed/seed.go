// Package seed fills a bookkeeping backend with plausible demo customers and ledgers.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Report counts what a run created.
type Report struct {
	Customers int
	Debts     int
	Payments  int
	Failures  int
}

// Seeder creates customers and ledger entries through the ordinary repositories,
// paced by a token bucket so a small backend is not flooded.
type Seeder struct {
	customers repository.CustomerRepository
	ledger    repository.LedgerRepository
	faker     *gofakeit.Faker
	limiter   *rate.Limiter
	cfg       config.SeedConfig
	log       zerolog.Logger
}

func New(customers repository.CustomerRepository, ledger repository.LedgerRepository, cfg config.SeedConfig, log zerolog.Logger) *Seeder {
	burst := int(cfg.RatePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Seeder{
		customers: customers,
		ledger:    ledger,
		faker:     gofakeit.New(uint64(cfg.RandomSeed)),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst),
		cfg:       cfg,
		log:       log.With().Str("module", "seed").Logger(),
	}
}

// Run seeds cfg.Customers customers. Backend rejections are counted and
// skipped; only a canceled context stops the run early.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var rep Report
	for i := 0; i < s.cfg.Customers; i++ {
		if err := s.seedCustomer(ctx, &rep); err != nil {
			if ctx.Err() != nil {
				return rep, ctx.Err()
			}
			rep.Failures++
			s.log.Warn().Err(err).Int("index", i).Msg("seeding customer failed")
		}
	}
	s.log.Info().
		Int("customers", rep.Customers).
		Int("debts", rep.Debts).
		Int("payments", rep.Payments).
		Int("failures", rep.Failures).
		Msg("seeding finished")
	return rep, nil
}

func (s *Seeder) seedCustomer(ctx context.Context, rep *Report) error {
	nc := s.newCustomer()
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := s.customers.Create(ctx, nc); err != nil {
		return fmt.Errorf("create %s: %w", nc.Phone, err)
	}
	rep.Customers++

	id, err := s.lookup(ctx, nc.Phone)
	if err != nil {
		return err
	}

	remaining := nc.InitialDebt
	entries := 0
	if s.cfg.MaxEntries > 0 {
		entries = s.faker.IntRange(0, s.cfg.MaxEntries)
	}
	for j := 0; j < entries; j++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if remaining.GreaterThan(decimal.Zero) && s.faker.Bool() {
			amount := s.payment(remaining)
			if _, err := s.ledger.PayInstallment(ctx, id, model.LedgerEntry{Amount: amount, Description: "قسط " + s.faker.MonthString()}); err != nil {
				return fmt.Errorf("pay %d: %w", id, err)
			}
			remaining = remaining.Sub(amount)
			rep.Payments++
			continue
		}
		amount := s.amount(50, 2000)
		if _, err := s.ledger.AddDebt(ctx, id, model.LedgerEntry{Amount: amount, Description: s.faker.ProductName()}); err != nil {
			return fmt.Errorf("debt %d: %w", id, err)
		}
		remaining = remaining.Add(amount)
		rep.Debts++
	}
	return nil
}

// lookup finds the customer just created; phone numbers are unique per run.
func (s *Seeder) lookup(ctx context.Context, phone string) (int64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	res, err := s.customers.List(ctx, repository.Page{Number: 1, PerPage: 1, Search: phone})
	if err != nil {
		return 0, fmt.Errorf("lookup %s: %w", phone, err)
	}
	if len(res.Items) == 0 {
		return 0, errors.New("created customer not found: " + phone)
	}
	return res.Items[0].ID, nil
}

func (s *Seeder) newCustomer() model.NewCustomer {
	debt := decimal.Zero
	if s.faker.IntRange(0, 3) > 0 {
		debt = s.amount(250, 5000)
	}
	return model.NewCustomer{
		Name:        s.faker.Name(),
		Phone:       s.faker.Numerify("07#########"),
		InitialDebt: debt,
	}
}

// amount is a whole multiple of 50 in [min, max].
func (s *Seeder) amount(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(s.faker.IntRange(min/50, max/50) * 50))
}

// payment is between a tenth and all of what is owed, never more.
func (s *Seeder) payment(remaining decimal.Decimal) decimal.Decimal {
	share := decimal.NewFromInt(int64(s.faker.IntRange(1, 10))).Div(decimal.NewFromInt(10))
	p := remaining.Mul(share).Round(0)
	if !p.GreaterThan(decimal.Zero) || p.GreaterThan(remaining) {
		return remaining
	}
	return p
}
