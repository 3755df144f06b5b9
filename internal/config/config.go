// Package config provides centralized configuration management for the
// importer. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all importer configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Feed     FeedConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	URL string `env:"DATABASE_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ImportConfig holds batch import settings.
type ImportConfig struct {
	// BatchSize is the number of rows processed per batch (default: 50)
	BatchSize int `env:"IMPORT_BATCH_SIZE" default:"50"`

	// BatchPause is the flat delay between batches, throttling write
	// pressure on the store (default: 100ms)
	BatchPause time.Duration `env:"IMPORT_BATCH_PAUSE" default:"100ms"`

	// AbortOnError stops the run at the first row failure instead of
	// recording it and continuing (default: false)
	AbortOnError bool `env:"IMPORT_ABORT_ON_ERROR" default:"false"`

	// MaxFeedSize is the maximum allowed feed size in bytes (default: 100MB)
	MaxFeedSize int64 `env:"IMPORT_MAX_FEED_SIZE" default:"104857600"`
}

// FeedConfig holds remote feed fetch settings.
type FeedConfig struct {
	// HTTPTimeout bounds a single HTTP fetch attempt (default: 30s)
	HTTPTimeout time.Duration `env:"FEED_HTTP_TIMEOUT" default:"30s"`

	// RetryAttempts is the total number of HTTP fetch attempts (default: 3)
	RetryAttempts int `env:"FEED_RETRY_ATTEMPTS" default:"3"`

	// RetryDelay is the pause between fetch attempts (default: 2s)
	RetryDelay time.Duration `env:"FEED_RETRY_DELAY" default:"2s"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint is served (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`

	// Port is the metrics listen port (default: 9090)
	Port string `env:"METRICS_PORT" default:"9090"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 {
		errs = append(errs, "DB_MIN_CONNS must be non-negative")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
			c.Database.MaxConns, c.Database.MinConns))
	}

	if c.Import.BatchSize <= 0 {
		errs = append(errs, "IMPORT_BATCH_SIZE must be positive")
	}
	if c.Import.BatchPause < 0 {
		errs = append(errs, "IMPORT_BATCH_PAUSE must be non-negative")
	}
	if c.Import.MaxFeedSize <= 0 {
		errs = append(errs, "IMPORT_MAX_FEED_SIZE must be positive")
	}

	if c.Feed.HTTPTimeout <= 0 {
		errs = append(errs, "FEED_HTTP_TIMEOUT must be positive")
	}
	if c.Feed.RetryAttempts <= 0 {
		errs = append(errs, "FEED_RETRY_ATTEMPTS must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Database: {URL: [MASKED], MaxConns: %d, MinConns: %d}, ",
		c.Database.MaxConns, c.Database.MinConns))
	b.WriteString(fmt.Sprintf("Import: {BatchSize: %d, BatchPause: %s, AbortOnError: %v}, ",
		c.Import.BatchSize, c.Import.BatchPause, c.Import.AbortOnError))
	b.WriteString(fmt.Sprintf("Feed: {HTTPTimeout: %s, RetryAttempts: %d}, ",
		c.Feed.HTTPTimeout, c.Feed.RetryAttempts))
	b.WriteString(fmt.Sprintf("Metrics: {Enabled: %v, Port: %s}, ",
		c.Metrics.Enabled, c.Metrics.Port))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
