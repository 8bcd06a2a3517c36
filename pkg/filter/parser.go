package filter

import "strings"

// Parse parses a filter expression into its ordered term list.
//
// Grammar (no precedence, clauses fold left to right):
//
//	filter    := clause ( connector clause )*
//	connector := "AND" | "OR" | "||"
//	clause    := [ "NOT" | "!" ] atom | "not(" atom ")"
//	atom      := [ field ":" ] pattern
//
// An empty expression, an unterminated "not(", or a connector with no
// following clause fail with a *SyntaxError; nothing is partially parsed.
func Parse(input string) (*Filter, error) {
	p := &parser{input: input, toks: lexTokens(input)}

	if p.peek().kind == tokEOF {
		return nil, p.errorAt(p.peek(), "empty filter expression")
	}

	first, err := p.parseClause()
	if err != nil {
		return nil, err
	}
	f := &Filter{Source: input, Terms: []Term{{Connector: ConnFirst, Clause: first}}}

	for p.peek().kind != tokEOF {
		connTok := p.next()
		var conn Connector
		switch connTok.kind {
		case tokAnd:
			conn = ConnAnd
		case tokOr:
			conn = ConnOr
		default:
			return nil, p.errorAt(connTok, "expected AND or OR")
		}

		if p.peek().kind == tokEOF {
			return nil, p.errorAt(connTok, "connector has no following clause")
		}
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		f.Terms = append(f.Terms, Term{Connector: conn, Clause: clause})
	}

	return f, nil
}

// ParseAll parses each expression independently. The results are combined
// with an implicit top-level AND by the evaluator.
func ParseAll(inputs []string) ([]*Filter, error) {
	filters := make([]*Filter, 0, len(inputs))
	for _, in := range inputs {
		f, err := Parse(in)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorAt(t token, msg string) error {
	return &SyntaxError{Input: p.input, Pos: t.pos, Token: t.text, Msg: msg}
}

func (p *parser) parseClause() (Clause, error) {
	switch t := p.peek(); t.kind {
	case tokBang:
		p.next()
		clause, err := p.parseAtom()
		if err != nil {
			return Clause{}, err
		}
		clause.Negated = true
		return clause, nil

	case tokNot:
		notTok := p.next()
		if p.peek().kind == tokLParen {
			p.next()
			clause, err := p.parseAtom()
			if err != nil {
				return Clause{}, err
			}
			if p.peek().kind != tokRParen {
				return Clause{}, p.errorAt(notTok, `unterminated "not(": missing ")"`)
			}
			p.next()
			clause.Negated = true
			return clause, nil
		}
		clause, err := p.parseAtom()
		if err != nil {
			return Clause{}, err
		}
		clause.Negated = true
		return clause, nil

	default:
		return p.parseAtom()
	}
}

func (p *parser) parseAtom() (Clause, error) {
	t := p.peek()
	if t.kind != tokText {
		return Clause{}, p.errorAt(t, "expected a pattern")
	}
	p.next()
	field, pattern := splitFieldPrefix(t.text)
	return Clause{Field: field, Pattern: pattern}, nil
}

// splitFieldPrefix splits "field:pattern" when the prefix names a known
// field; otherwise the whole atom is the pattern, colon included.
func splitFieldPrefix(atom string) (Field, string) {
	idx := strings.IndexByte(atom, ':')
	if idx <= 0 {
		return "", atom
	}
	prefix := strings.ToLower(atom[:idx])
	switch Field(prefix) {
	case FieldComponent, FieldMessage, FieldTimestamp, FieldTS:
		return Field(prefix), atom[idx+1:]
	}
	return "", atom
}
