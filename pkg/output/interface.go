package output

import (
	"fmt"
	"io"

	"logsift/pkg/model"
)

// Formatter renders query results in a specific format.
type Formatter interface {
	// Format renders the entries to the given writer.
	Format(w io.Writer, entries []model.Entry, proj Projection) error

	// Name returns the format name (text, json).
	Name() string
}

// New creates the formatter for the given format name.
func New(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (available: text, json)", format)
}
