package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultDatabase     = "logs.db"
	DefaultDirectory    = "."
	DefaultRangeSeconds = 120
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DefaultDatabase,
		Ingest: IngestConfig{
			Directory: DefaultDirectory,
		},
		Query: QueryConfig{
			RangeSeconds: DefaultRangeSeconds,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// RenderDefault renders the default configuration as a YAML document,
// suitable for writing a starter logsift.yaml.
func RenderDefault() ([]byte, error) {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("rendering default config: %w", err)
	}
	return data, nil
}
