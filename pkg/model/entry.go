// Package model defines the persisted log entry record shared by the
// ingestion and query paths.
package model

import (
	"fmt"
	"strconv"
	"time"
)

// Field names addressable in filters and output projections.
const (
	FieldTS        = "ts"
	FieldTimestamp = "timestamp"
	FieldComponent = "component"
	FieldMessage   = "message"
)

// Entry is a single reconstructed log entry.
//
// TS and Timestamp are denormalized twins: both always represent the same
// instant, TS as UNIX epoch seconds and Timestamp as its ISO-8601 UTC form.
type Entry struct {
	// ID is the insertion-order identifier assigned by the store.
	// Zero until the entry has been persisted.
	ID int64 `json:"id,omitempty"`

	// TS is the entry instant as UNIX epoch seconds.
	TS int64 `json:"ts"`

	// Timestamp is the ISO-8601 UTC rendering of TS (e.g. "2023-10-15T14:45:36Z").
	Timestamp string `json:"timestamp"`

	// Component is the service name derived from the source filename.
	Component string `json:"component"`

	// Message is the first line's text after the timestamp plus any
	// continuation lines, joined by newlines. May be empty.
	Message string `json:"message"`
}

// NewEntry creates an entry for the given instant, rendering the ISO twin.
func NewEntry(at time.Time, component, message string) Entry {
	ts := at.Unix()
	return Entry{
		TS:        ts,
		Timestamp: ISOTimestamp(ts),
		Component: component,
		Message:   message,
	}
}

// ISOTimestamp renders epoch seconds as the canonical ISO-8601 UTC string.
func ISOTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02T15:04:05Z")
}

// Fields lists the addressable field names in their default output order.
func Fields() []string {
	return []string{FieldTimestamp, FieldTS, FieldComponent, FieldMessage}
}

// ValidField reports whether name is an addressable entry field.
func ValidField(name string) bool {
	switch name {
	case FieldTS, FieldTimestamp, FieldComponent, FieldMessage:
		return true
	}
	return false
}

// FieldValue returns the string form of the named field.
func (e Entry) FieldValue(name string) (string, error) {
	switch name {
	case FieldTS:
		return strconv.FormatInt(e.TS, 10), nil
	case FieldTimestamp:
		return e.Timestamp, nil
	case FieldComponent:
		return e.Component, nil
	case FieldMessage:
		return e.Message, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}
