package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/handler"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/metrics"
	"github.com/maxviazov/installment-console/internal/render"
	"github.com/maxviazov/installment-console/internal/repository/rest"
	"github.com/maxviazov/installment-console/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := handler.LoadOpenAPI(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Embedded API description is invalid")
	}

	var reg *metrics.Registry
	opts := []rest.Option{}
	if cfg.Metrics.Enabled {
		reg = metrics.New(true)
		opts = append(opts, rest.WithObserver(reg))
	}

	client, err := rest.New(cfg.Backend, appLogger, opts...)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Backend client initialization failed")
	}
	customers := rest.NewCustomerRepository(client)
	ledger := rest.NewLedgerRepository(client)
	pinger := rest.NewPinger(client)

	format, err := dashboard.NewFormatter(cfg.Display.Locale, cfg.Display.Currency)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Display settings are invalid")
	}
	templates, err := render.New(format)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Template parsing failed")
	}

	if err := pinger.Ping(ctx); err != nil {
		// the console still starts; /ready reports the backend until it answers
		appLogger.Warn().Err(err).Str("backend", cfg.Backend.BaseURL).Msg("⚠️ Backend not reachable yet")
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.Deps{
		Backend:     pinger,
		Views:       service.NewViewService(customers, ledger, rest.NewReportRepository(client), format, cfg.Listing.PerPage, appLogger),
		Actions:     service.NewActionService(customers, ledger, appLogger),
		Templates:   templates,
		Metrics:     reg,
		MetricsPath: cfg.Metrics.Path,
		PerPage:     cfg.Listing.PerPage,
		FlashMaxAge: cfg.App.FlashMaxAge,
		Log:         appLogger,
	})

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.App.Host, strconv.Itoa(cfg.App.Port)),
		Handler: router,
	}
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("backend", cfg.Backend.BaseURL).Msg("🚀 Console started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("❌ HTTP server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("Shutting down console...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("❌ Forced shutdown")
		return
	}
	appLogger.Info().Msg("✅ Console stopped")
}
