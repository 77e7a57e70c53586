package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, applies APP_* environment overrides
// (APP_BACKEND_BASE_URL -> backend.base_url) and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Every key gets a default so AutomaticEnv can override keys the file omits.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "installment-console")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.host", "127.0.0.1")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)
	v.SetDefault("app.flash_max_age", 30)

	// empty logger keys are filled per environment by logger.New
	for _, key := range []string{"level", "format", "output_target", "env", "service_name", "service_version"} {
		v.SetDefault("logger."+key, "")
	}

	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.user_agent", "installment-console/0.1")

	v.SetDefault("listing.per_page", 7)

	v.SetDefault("display.locale", "ar-IQ")
	v.SetDefault("display.currency", "دينار")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("seed.customers", 25)
	v.SetDefault("seed.max_entries", 4)
	v.SetDefault("seed.rate_per_second", 10.0)
	v.SetDefault("seed.random_seed", 0)
}
