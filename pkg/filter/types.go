// Package filter implements the boolean filter mini-language used to narrow
// query results: a flat, left-to-right fold of AND/OR-connected clauses with
// optional negation and field prefixes, find(1)-style.
package filter

import "fmt"

// Field names an entry field a clause matches against.
type Field string

// Recognized field prefixes. An atom with any other prefix is treated as a
// bare pattern, colon included.
const (
	FieldComponent Field = "component"
	FieldMessage   Field = "message"
	FieldTimestamp Field = "timestamp"
	FieldTS        Field = "ts"
)

// Connector joins a clause to the running fold result.
type Connector int

const (
	// ConnFirst marks the leading clause, which has no connector.
	ConnFirst Connector = iota
	ConnAnd
	ConnOr
)

// String returns the connector keyword.
func (c Connector) String() string {
	switch c {
	case ConnAnd:
		return "AND"
	case ConnOr:
		return "OR"
	}
	return ""
}

// Clause is one [negation] [field:] pattern unit.
type Clause struct {
	// Negated inverts the clause's match result.
	Negated bool

	// Field is the entry field to match; empty means the default (message).
	Field Field

	// Pattern is matched by case-insensitive substring containment.
	Pattern string
}

// EffectiveField returns the field the clause matches against, resolving the
// default.
func (c Clause) EffectiveField() Field {
	if c.Field == "" {
		return FieldMessage
	}
	return c.Field
}

// Term pairs a clause with the connector that joins it to the fold.
type Term struct {
	Connector Connector
	Clause    Clause
}

// Filter is a parsed filter expression: an ordered, non-empty list of terms
// evaluated strictly left to right with no operator precedence.
type Filter struct {
	// Source is the original expression text, kept for diagnostics.
	Source string

	Terms []Term
}

// SyntaxError describes a malformed filter expression.
type SyntaxError struct {
	// Input is the full filter expression.
	Input string

	// Pos is the byte offset of the offending token.
	Pos int

	// Token is the offending substring, empty at end of input.
	Token string

	// Msg describes what was expected.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("syntax error in filter %q at position %d: %s", e.Input, e.Pos, e.Msg)
	}
	return fmt.Sprintf("syntax error in filter %q at position %d near %q: %s", e.Input, e.Pos, e.Token, e.Msg)
}
