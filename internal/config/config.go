// Package config provides centralized configuration management for the importer.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Import     ImportConfig
	Duplicates DuplicateConfig
	Database   DatabaseConfig
	SQLite     SQLiteConfig
	Logging    LoggingConfig
}

// ImportConfig holds statement parsing limits.
type ImportConfig struct {
	// MaxFileSize is the maximum accepted statement size in bytes (default: 5MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"5242880"`

	// MaxRows is the maximum number of data rows read from a file (default: 1000)
	MaxRows int `env:"IMPORT_MAX_ROWS" default:"1000"`

	// Timeout bounds the existing-transaction lookup (default: 30s)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"30s"`
}

// DuplicateConfig holds duplicate detection settings.
type DuplicateConfig struct {
	// Enabled controls whether candidates are checked against a store (default: true)
	Enabled bool `env:"DUPLICATE_CHECK_ENABLED" default:"true"`

	// WindowDays is the max day distance between matching dates (default: 1)
	WindowDays int `env:"DUPLICATE_WINDOW_DAYS" default:"1"`

	// Threshold is the minimum confidence reported as a duplicate (default: 60)
	Threshold int `env:"DUPLICATE_THRESHOLD" default:"60"`

	// SimilarityFloor is the description similarity below which text scores nothing (default: 0.8)
	SimilarityFloor float64 `env:"DUPLICATE_SIMILARITY_FLOOR" default:"0.8"`

	// AmountTolerance is the max absolute amount difference for a match (default: 0.01)
	AmountTolerance float64 `env:"DUPLICATE_AMOUNT_TOLERANCE" default:"0.01"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SQLiteConfig holds settings for a local SQLite transaction store.
type SQLiteConfig struct {
	// Path is the database file (optional, mutually exclusive with DATABASE_URL)
	Path string `env:"SQLITE_PATH"`

	// BusyTimeout is how long to wait on a locked database (default: 5s)
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// HasStore reports whether an existing-transaction store is configured.
func (c *Config) HasStore() bool {
	return c.Database.URL != "" || c.SQLite.Path != ""
}
