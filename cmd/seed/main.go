package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/repository/rest"
	"github.com/maxviazov/installment-console/internal/seed"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	customers := flag.Int("customers", -1, "override seed.customers")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	if *customers >= 0 {
		cfg.Seed.Customers = *customers
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	client, err := rest.New(cfg.Backend, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Backend client initialization failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rest.NewPinger(client).Ping(ctx); err != nil {
		appLogger.Fatal().Err(err).Str("backend", cfg.Backend.BaseURL).Msg("❌ Backend not reachable")
	}

	s := seed.New(rest.NewCustomerRepository(client), rest.NewLedgerRepository(client), cfg.Seed, appLogger)
	rep, err := s.Run(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Int("customers", rep.Customers).Msg("❌ Seeding interrupted")
	}
	appLogger.Info().Int("customers", rep.Customers).Int("failures", rep.Failures).Msg("✅ Seeding done")
}
