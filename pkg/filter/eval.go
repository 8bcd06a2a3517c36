package filter

import (
	"strconv"
	"strings"

	"logsift/pkg/model"
)

// Match evaluates the clause against one entry: a case-insensitive substring
// containment test on the clause's field, inverted when negated.
func (c Clause) Match(e model.Entry) bool {
	var value string
	switch c.EffectiveField() {
	case FieldComponent:
		value = e.Component
	case FieldTimestamp:
		value = e.Timestamp
	case FieldTS:
		value = strconv.FormatInt(e.TS, 10)
	default:
		value = e.Message
	}

	matched := strings.Contains(strings.ToLower(value), strings.ToLower(c.Pattern))
	if c.Negated {
		return !matched
	}
	return matched
}

// Evaluate applies the filter to an entry, folding strictly left to right:
// the running result combines with each clause in written order, so
// "a AND b OR c" means "(a AND b) OR c" and "a OR b AND c" means
// "(a OR b) AND c". There is no precedence between AND and OR.
func (f *Filter) Evaluate(e model.Entry) bool {
	result := f.Terms[0].Clause.Match(e)
	for _, t := range f.Terms[1:] {
		matched := t.Clause.Match(e)
		switch t.Connector {
		case ConnAnd:
			result = result && matched
		case ConnOr:
			result = result || matched
		}
	}
	return result
}

// EvaluateAll reports whether the entry satisfies every filter. Independently
// supplied filter expressions combine with a top-level AND; an empty filter
// list matches everything.
func EvaluateAll(filters []*Filter, e model.Entry) bool {
	for _, f := range filters {
		if !f.Evaluate(e) {
			return false
		}
	}
	return true
}
