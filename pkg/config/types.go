// Package config provides configuration loading and validation for logsift.
package config

// Config is the root configuration structure. Values come from defaults,
// an optional logsift.yaml, and LOGSIFT_* environment variables, in that
// order; command-line flags override all of them.
type Config struct {
	// Database is the SQLite database file path.
	Database string `yaml:"database" mapstructure:"database"`

	Ingest  IngestConfig  `yaml:"ingest" mapstructure:"ingest"`
	Query   QueryConfig   `yaml:"query" mapstructure:"query"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// IngestConfig controls the write path.
type IngestConfig struct {
	// Directory is scanned for *.log files.
	Directory string `yaml:"directory" mapstructure:"directory"`

	// Date is the calendar date (YYYY-MM-DD) combined with recognized
	// times-of-day. Empty means today, UTC.
	Date string `yaml:"date,omitempty" mapstructure:"date"`

	// Excludes are glob patterns matched against log file base names.
	Excludes []string `yaml:"excludes,omitempty" mapstructure:"excludes"`
}

// QueryConfig controls the read path defaults.
type QueryConfig struct {
	// RangeSeconds is the default window radius around the target instant.
	RangeSeconds int64 `yaml:"range_seconds" mapstructure:"range_seconds"`

	// Limit caps results; zero means unlimited.
	Limit int `yaml:"limit,omitempty" mapstructure:"limit"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `yaml:"format" mapstructure:"format"`
}
