package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file overlaid with
// LOGSIFT_* environment variables (e.g. LOGSIFT_DATABASE,
// LOGSIFT_LOGGING_LEVEL). When path is empty, logsift.yaml in the current
// directory is used if present; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault("database", defaults.Database)
	v.SetDefault("ingest.directory", defaults.Ingest.Directory)
	v.SetDefault("ingest.date", "")
	v.SetDefault("ingest.excludes", []string{})
	v.SetDefault("query.range_seconds", defaults.Query.RangeSeconds)
	v.SetDefault("query.limit", 0)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetEnvPrefix("LOGSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("logsift")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Database == "" {
		return errors.New("database: path is required")
	}

	if cfg.Query.RangeSeconds < 0 {
		return fmt.Errorf("query.range_seconds: must be non-negative, got %d", cfg.Query.RangeSeconds)
	}
	if cfg.Query.Limit < 0 {
		return fmt.Errorf("query.limit: must be non-negative, got %d", cfg.Query.Limit)
	}

	if cfg.Ingest.Date != "" {
		if _, err := time.Parse("2006-01-02", cfg.Ingest.Date); err != nil {
			return fmt.Errorf("ingest.date: expected YYYY-MM-DD, got %q", cfg.Ingest.Date)
		}
	}

	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}

	return nil
}

// ReferenceDate resolves the ingest reference date: the configured
// YYYY-MM-DD value, or today in UTC when unset.
func (c *Config) ReferenceDate() (time.Time, error) {
	if c.Ingest.Date == "" {
		return time.Now().UTC(), nil
	}
	d, err := time.Parse("2006-01-02", c.Ingest.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", c.Ingest.Date)
	}
	return d, nil
}
