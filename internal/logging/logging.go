// Package logging constructs the process logger from configuration.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"logsift/pkg/config"
)

// New creates a zerolog logger writing to stderr, leaving stdout free for
// query results.
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithOutput(cfg, nil)
}

// NewWithOutput creates a logger with a custom sink, used by tests.
func NewWithOutput(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		switch cfg.Format {
		case "json":
			out = os.Stderr
		default:
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		}
	}

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && cfg.Level != "" {
		level = parsed
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
