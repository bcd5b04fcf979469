package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the planner service.
// Environment variables are parsed from the PLANNER_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// DBDriver selects the storage backend: sqlite, postgres, or auto.
	// auto picks postgres when a DSN is present, sqlite otherwise.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// SQLite Configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"planner.db"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Calendar import limits
	MaxCalendarBytes int `envconfig:"MAX_CALENDAR_BYTES" default:"524288"`

	// DefaultTimeZone is the IANA zone used to interpret calendar
	// timestamps that carry no zone of their own.
	DefaultTimeZone string `envconfig:"DEFAULT_TIMEZONE" default:"Local"`
}

// ResolveDefaults derives DBDriver when set to "auto" or empty and validates
// the result.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("PLANNER_SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("PLANNER_POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.MaxCalendarBytes <= 0 {
		return fmt.Errorf("MAX_CALENDAR_BYTES must be positive, got %d", c.MaxCalendarBytes)
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Example: PLANNER_HTTP_PORT, PLANNER_POSTGRES_DSN.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PLANNER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("default_timezone", cfg.DefaultTimeZone).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}
