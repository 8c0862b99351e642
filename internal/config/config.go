// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultInstanceListLimit caps how many database instances a single
// listing request returns.
const DefaultInstanceListLimit = 10

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"DATABRICKS_APP_PORT" envDefault:"8000"`

	// Directory holding the pre-built frontend bundle.
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Database instance listing
	InstanceListLimit int           `env:"INSTANCE_LIST_LIMIT" envDefault:"10"`
	InstanceCacheTTL  time.Duration `env:"INSTANCE_CACHE_TTL" envDefault:"0s"`

	// Optional Redis used to cache instance listings.
	RedisURL string `env:"REDIS_URL"`

	// Optional Lakebase Postgres DSN, only checked for readiness.
	LakebaseDatabaseURL string `env:"LAKEBASE_DATABASE_URL"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "http://localhost:3000")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether successful instance listings are cached.
func (c *Config) CacheEnabled() bool {
	return c.InstanceCacheTTL > 0
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.InstanceListLimit < 1 {
		return fmt.Errorf("INSTANCE_LIST_LIMIT must be at least 1, got %d", c.InstanceListLimit)
	}
	if c.InstanceCacheTTL < 0 {
		return fmt.Errorf("INSTANCE_CACHE_TTL must not be negative, got %s", c.InstanceCacheTTL)
	}
	if c.CacheEnabled() && c.RedisURL == "" {
		return errors.New("INSTANCE_CACHE_TTL requires REDIS_URL")
	}
	if strings.TrimSpace(c.StaticDir) == "" {
		return errors.New("STATIC_DIR must not be empty")
	}
	return nil
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
