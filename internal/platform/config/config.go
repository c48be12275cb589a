// Package config loads application configuration from environment variables
// following 12-factor principles. The returned Config is treated as
// immutable after Load; legal policy changes ship as a redeploy, never as a
// runtime mutation.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Addr   string `env:"ADDR" envDefault:":8080"`

	// Database (PostgreSQL, hosted record store)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Redis (erasure serialization lock)
	RedisURL          string        `env:"REDIS_URL" envDefault:""`
	RedisPoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RedisDialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	RedisWriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`

	// Session verification (issued by the hosted identity service)
	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"vorsorge"`
	JWTAudience   string `env:"JWT_AUDIENCE" envDefault:"vorsorge-app"`

	// Billing (Stripe)
	StripeAPIKey           string `env:"STRIPE_API_KEY" envDefault:""`
	BillingPortalReturnURL string `env:"BILLING_PORTAL_RETURN_URL" envDefault:"https://app.vorsorge.example/settings"`

	// Identity deletion (hosted auth admin API)
	IdentityAdminURL string `env:"IDENTITY_ADMIN_URL" envDefault:""`
	IdentityAdminKey string `env:"IDENTITY_ADMIN_KEY" envDefault:""`

	// Legal requirement policy. Changing the version or the mandatory set is
	// a deploy, which implicitly forces affected users to re-consent.
	LegalDocumentVersion    string   `env:"LEGAL_DOCUMENT_VERSION" envDefault:"2026-02"`
	LegalRequiredCategories []string `env:"LEGAL_REQUIRED_CATEGORIES" envDefault:"agb:avv:b2b_confirm" envSeparator:":"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Erasure
	ErasureLockTTL time.Duration `env:"ERASURE_LOCK_TTL" envDefault:"2m"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// RedisConfig groups the Redis connection settings for the platform client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Redis extracts the Redis settings from the loaded configuration.
func (c *Config) Redis() RedisConfig {
	return RedisConfig{
		URL:          c.RedisURL,
		PoolSize:     c.RedisPoolSize,
		MinIdleConns: c.RedisMinIdleConns,
		DialTimeout:  c.RedisDialTimeout,
		ReadTimeout:  c.RedisReadTimeout,
		WriteTimeout: c.RedisWriteTimeout,
	}
}
