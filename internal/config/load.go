package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, optionally, a
// config.yaml in the working directory. Environment variables take precedence
// over file values and use the WALLET_ prefix with underscores, e.g.
// WALLET_SERVER_PORT or WALLET_AUTH_INTERNAL_KEY.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Secrets and URLs default to empty and are caught by validation; registering
// the key is still required so viper maps the env variable during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.internal_key", "")
	v.SetDefault("auth.token_lifetime", time.Hour)

	v.SetDefault("services.profiles_url", "")
	v.SetDefault("services.accounts_url", "")
	v.SetDefault("services.ledger_url", "")
	v.SetDefault("services.cards_url", "")

	v.SetDefault("resilience.max_attempts", 3)
	v.SetDefault("resilience.initial_backoff", 100*time.Millisecond)
	v.SetDefault("resilience.max_backoff", 2*time.Second)
	v.SetDefault("resilience.breaker_threshold", 5)
	v.SetDefault("resilience.breaker_cooldown", 30*time.Second)
}
