package filter

import "strings"

type tokenKind int

const (
	tokText tokenKind = iota
	tokAnd
	tokOr
	tokNot
	tokBang
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// isOperatorByte reports whether b terminates a pattern run.
func isOperatorByte(b byte) bool {
	return b == '!' || b == '(' || b == ')'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// lexTokens splits a filter expression into tokens. The keywords AND, OR and
// NOT are recognized case-insensitively; "||" and "!" are recognized as
// symbols regardless of surrounding whitespace. Everything else is pattern
// text, terminated by whitespace, parentheses, "!" or "||".
func lexTokens(input string) []token {
	var toks []token
	i := 0
	for i < len(input) {
		switch b := input[i]; {
		case isSpace(b):
			i++
		case b == '!':
			toks = append(toks, token{tokBang, "!", i})
			i++
		case b == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case b == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case b == '|' && i+1 < len(input) && input[i+1] == '|':
			toks = append(toks, token{tokOr, "||", i})
			i += 2
		default:
			start := i
			for i < len(input) && !isSpace(input[i]) && !isOperatorByte(input[i]) {
				// A single "|" is pattern text; only "||" is an operator.
				if input[i] == '|' && i+1 < len(input) && input[i+1] == '|' {
					break
				}
				i++
			}
			text := input[start:i]
			toks = append(toks, token{keywordKind(text), text, start})
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks
}

func keywordKind(text string) tokenKind {
	switch {
	case strings.EqualFold(text, "and"):
		return tokAnd
	case strings.EqualFold(text, "or"):
		return tokOr
	case strings.EqualFold(text, "not"):
		return tokNot
	}
	return tokText
}
