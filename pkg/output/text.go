package output

import (
	"fmt"
	"io"
	"strings"

	"logsift/pkg/model"
)

const separatorWidth = 80

// TextFormatter renders entries as a pipe-separated table with a header.
type TextFormatter struct{}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the entries as text.
func (f *TextFormatter) Format(w io.Writer, entries []model.Entry, proj Projection) error {
	headers := make([]string, len(proj.Fields()))
	for i, field := range proj.Fields() {
		if field == model.FieldTS {
			headers[i] = "UNIX_TS"
		} else {
			headers[i] = strings.ToUpper(field)
		}
	}

	sep := strings.Repeat("-", separatorWidth)
	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", sep, strings.Join(headers, " | "), sep); err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := fmt.Fprintln(w, strings.Join(proj.Row(e), " | ")); err != nil {
			return err
		}
	}
	return nil
}
