package output

import (
	"encoding/json"
	"io"

	"logsift/pkg/model"
)

// JSONFormatter renders entries as a JSON array of projected objects.
type JSONFormatter struct{}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the entries as JSON.
func (f *JSONFormatter) Format(w io.Writer, entries []model.Entry, proj Projection) error {
	objects := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		obj := make(map[string]string, len(proj.Fields()))
		for _, field := range proj.Fields() {
			v, _ := e.FieldValue(field)
			obj[field] = v
		}
		objects = append(objects, obj)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(objects)
}
