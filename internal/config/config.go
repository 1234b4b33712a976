package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Services   ServicesConfig   `mapstructure:"services"   validate:"required"`
	Resilience ResilienceConfig `mapstructure:"resilience" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and service-to-service trust settings.
type AuthConfig struct {
	// JWTSecret signs the access tokens issued on login.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// InternalKey is the shared static secret every downstream call must
	// present in the X-Internal-Key header.
	InternalKey string `mapstructure:"internal_key" validate:"required,min=16"`

	// TokenLifetime bounds how long an access token stays valid.
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"required"`
}

// ServicesConfig holds the base URLs of the collaborating services.
type ServicesConfig struct {
	ProfilesURL string `mapstructure:"profiles_url" validate:"required,url"`
	AccountsURL string `mapstructure:"accounts_url" validate:"required,url"`
	LedgerURL   string `mapstructure:"ledger_url"   validate:"required,url"`
	CardsURL    string `mapstructure:"cards_url"    validate:"required,url"`
}

// ResilienceConfig tunes the retry and circuit-breaker policy applied to
// remote calls.
type ResilienceConfig struct {
	MaxAttempts      int           `mapstructure:"max_attempts"      validate:"required,gte=1"`
	InitialBackoff   time.Duration `mapstructure:"initial_backoff"   validate:"required"`
	MaxBackoff       time.Duration `mapstructure:"max_backoff"       validate:"required"`
	BreakerThreshold int           `mapstructure:"breaker_threshold" validate:"required,gte=1"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"  validate:"required"`
}
