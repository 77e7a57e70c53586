package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/repository/rest"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/maxviazov/installment-console/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	logPath := flag.String("log", filepath.Join("logs", "console.log"), "log file; the terminal belongs to the UI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*logPath), 0o755); err != nil {
		log.Fatalf("❌ Log directory: %v", err)
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log.Fatalf("❌ Log file: %v", err)
	}
	defer logFile.Close()

	appLogger, err := logger.NewWithWriter(&cfg.Logger, logFile)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	client, err := rest.New(cfg.Backend, appLogger)
	if err != nil {
		log.Fatalf("❌ Backend client initialization failed: %v", err)
	}
	customers := rest.NewCustomerRepository(client)
	ledger := rest.NewLedgerRepository(client)

	format, err := dashboard.NewFormatter(cfg.Display.Locale, cfg.Display.Currency)
	if err != nil {
		log.Fatalf("❌ Display settings are invalid: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.New(ctx,
		service.NewViewService(customers, ledger, rest.NewReportRepository(client), format, cfg.Listing.PerPage, appLogger),
		service.NewActionService(customers, ledger, appLogger),
		format,
		tui.Options{PerPage: cfg.Listing.PerPage, Timeout: cfg.Backend.Timeout, Log: appLogger},
	)

	appLogger.Info().Str("backend", cfg.Backend.BaseURL).Msg("terminal console started")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}
