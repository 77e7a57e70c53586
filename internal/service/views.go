package service

import (
	"context"
	"time"

	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/rs/zerolog"
)

// viewService shapes backend reads into view-models, no transport details.
type viewService struct {
	customers repository.CustomerRepository
	ledger    repository.LedgerRepository
	reports   repository.ReportRepository
	format    *dashboard.Formatter
	perPage   int
	log       zerolog.Logger
}

func NewViewService(
	customers repository.CustomerRepository,
	ledger repository.LedgerRepository,
	reports repository.ReportRepository,
	format *dashboard.Formatter,
	perPage int,
	logger zerolog.Logger,
) ViewService {
	l := logger.With().Str("module", "service").Str("component", "views").Logger()
	return &viewService{customers: customers, ledger: ledger, reports: reports, format: format, perPage: perPage, log: l}
}

func (s *viewService) Listing(ctx context.Context, p repository.Page) (listing.View, error) {
	start := time.Now()
	p = normalizePage(p, s.perPage)
	res, err := s.customers.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Number).Str("search", p.Search).Msg("list customers failed")
		return listing.View{}, err
	}
	v := listing.Build(p, res)
	s.log.Debug().Dur("took", time.Since(start)).Int("page", v.State.Page).Int("total", v.Total).Msg("listing built")
	return v, nil
}

func (s *viewService) Dashboard(ctx context.Context) (dashboard.Cards, error) {
	sum, err := s.reports.Summary(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("summary failed")
		return dashboard.Cards{}, err
	}
	return dashboard.Build(sum, s.format), nil
}

func (s *viewService) Customer(ctx context.Context, id int64) (CustomerDetails, error) {
	if err := validateID("id", id); err != nil {
		return CustomerDetails{}, err
	}
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return CustomerDetails{}, err
	}
	txs, err := s.ledger.ListByCustomer(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("customer_id", id).Msg("list transactions failed")
		return CustomerDetails{}, err
	}
	return CustomerDetails{Customer: c, Transactions: txs}, nil
}
