package filter

import "strings"

// likeEscaper protects LIKE metacharacters in user patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CompileSQL renders the filter as a SQL condition equivalent to Evaluate,
// with one positional parameter per clause. The left-to-right fold is
// preserved by parenthesizing the running expression before each connector:
// "a OR b AND c" compiles to "((a) OR (b)) AND (c)", never letting SQL's
// native AND-over-OR precedence reorder the clauses.
func (f *Filter) CompileSQL() (string, []any) {
	expr, args := clauseSQL(f.Terms[0].Clause)
	expr = "(" + expr + ")"
	for _, t := range f.Terms[1:] {
		next, arg := clauseSQL(t.Clause)
		expr = "(" + expr + " " + t.Connector.String() + " (" + next + "))"
		args = append(args, arg...)
	}
	return expr, args
}

// clauseSQL renders one clause as a case-insensitive containment condition.
// SQLite's LIKE is case-insensitive for ASCII, matching Clause.Match.
func clauseSQL(c Clause) (string, []any) {
	cond := string(c.EffectiveField()) + ` LIKE ? ESCAPE '\'`
	if c.Negated {
		cond = "NOT (" + cond + ")"
	}
	return cond, []any{"%" + likeEscaper.Replace(c.Pattern) + "%"}
}
