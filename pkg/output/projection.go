// Package output renders ordered query results with caller-selected field
// projection.
package output

import (
	"fmt"
	"strings"

	"logsift/pkg/model"
)

// Projection is a validated, ordered list of entry fields to emit.
type Projection struct {
	fields []string
}

// DefaultProjection is the standard column set.
func DefaultProjection() Projection {
	return Projection{fields: []string{model.FieldTimestamp, model.FieldComponent, model.FieldMessage}}
}

// WithTimeProjection adds the raw UNIX ts column to the default set.
func WithTimeProjection() Projection {
	return Projection{fields: []string{model.FieldTimestamp, model.FieldTS, model.FieldComponent, model.FieldMessage}}
}

// NewProjection validates a caller-specified field list. Unknown field names
// fail the query before any storage access.
func NewProjection(fields []string) (Projection, error) {
	if len(fields) == 0 {
		return DefaultProjection(), nil
	}
	var invalid []string
	cleaned := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if !model.ValidField(f) {
			invalid = append(invalid, f)
			continue
		}
		cleaned = append(cleaned, f)
	}
	if len(invalid) > 0 {
		return Projection{}, fmt.Errorf("invalid fields: %s (available: %s)",
			strings.Join(invalid, ", "), strings.Join(model.Fields(), ", "))
	}
	return Projection{fields: cleaned}, nil
}

// ParseProjection parses a comma-separated field list.
func ParseProjection(spec string) (Projection, error) {
	return NewProjection(strings.Split(spec, ","))
}

// Fields returns the projected field names in order.
func (p Projection) Fields() []string {
	return p.fields
}

// Row projects one entry into its string values, in projection order.
func (p Projection) Row(e model.Entry) []string {
	row := make([]string, len(p.fields))
	for i, f := range p.fields {
		v, _ := e.FieldValue(f) // fields are pre-validated
		row[i] = v
	}
	return row
}
