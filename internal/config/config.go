package config

import (
	"time"

	"github.com/maxviazov/installment-console/internal/logger"
)

type Config struct {
	App     AppConfig           `mapstructure:"app"`
	Logger  logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New
	Backend BackendConfig       `mapstructure:"backend"`
	Listing ListingConfig       `mapstructure:"listing"`
	Display DisplayConfig       `mapstructure:"display"`
	Metrics MetricsConfig       `mapstructure:"metrics"`
	Seed    SeedConfig          `mapstructure:"seed"`
}

// AppConfig describes the web console process.
type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// FlashMaxAge bounds how long an undelivered notice survives, in seconds.
	FlashMaxAge int `mapstructure:"flash_max_age" validate:"min=1"`
}

// BackendConfig points at the bookkeeping REST backend.
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ListingConfig shapes the customer listing.
type ListingConfig struct {
	PerPage int `mapstructure:"per_page" validate:"min=1,max=100"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Locale   string `mapstructure:"locale" validate:"required"`
	Currency string `mapstructure:"currency"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

// SeedConfig drives the demo data seeder.
type SeedConfig struct {
	Customers     int     `mapstructure:"customers" validate:"min=0"`
	MaxEntries    int     `mapstructure:"max_entries" validate:"min=0"`
	RatePerSecond float64 `mapstructure:"rate_per_second" validate:"gt=0"`
	RandomSeed    int64   `mapstructure:"random_seed"`
}
