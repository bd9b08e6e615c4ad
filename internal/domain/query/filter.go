package query

import (
	"fmt"
	"strings"
)

// Fields is an entity's static declaration of searchable and orderable columns.
type Fields struct {
	Text    []string
	Numeric []string
	Float   []string
	Order   []string
	// Parent is the foreign-key column scoping a nested entity; empty for root entities.
	Parent string
}

// ForClass returns the columns declared for class.
func (f Fields) ForClass(c Class) []string {
	switch c {
	case ClassText:
		return f.Text
	case ClassNumeric:
		return f.Numeric
	case ClassFloat:
		return f.Float
	default:
		return nil
	}
}

// IsNested reports whether the entity is scoped by a parent foreign key.
func (f Fields) IsNested() bool { return f.Parent != "" }

// Orderable reports whether name is a declared order-by target.
func (f Fields) Orderable(name string) bool {
	for _, o := range f.Order {
		if o == name {
			return true
		}
	}
	return false
}

// Filter is a compiled WHERE/ORDER BY fragment with its bound arguments
// in placeholder order.
type Filter struct {
	where   string
	orderBy string
	args    []any
	tokens  []Token
}

// Where returns the "WHERE ..." clause, or "" when nothing filters.
func (f Filter) Where() string { return f.where }

// OrderBy returns the "ORDER BY ..." clause, or "" when no valid order was requested.
func (f Filter) OrderBy() string { return f.orderBy }

// Args returns the bound values matching the placeholders left to right.
func (f Filter) Args() []any { return f.args }

// Tokens returns the tokens the filter was compiled from.
func (f Filter) Tokens() []Token { return f.tokens }

// IsEmpty reports whether the fragment has neither WHERE nor ORDER BY.
func (f Filter) IsEmpty() bool { return f.where == "" && f.orderBy == "" }

// SQL joins the WHERE and ORDER BY clauses.
func (f Filter) SQL() string {
	switch {
	case f.where == "":
		return f.orderBy
	case f.orderBy == "":
		return f.where
	default:
		return f.where + " " + f.orderBy
	}
}

// Request carries the list parameters fed to Compile.
type Request struct {
	Search string
	Order  string
	// ParentID scopes the filter to one parent. Ignored for root entities.
	ParentID *int64
}

// Compile turns a search request into a filter fragment for an entity.
// Unknown order names are dropped silently.
func Compile(req Request, fields Fields) (Filter, error) {
	if fields.IsNested() && req.ParentID == nil {
		return Filter{}, fmt.Errorf("parent id required for entity scoped by %q", fields.Parent)
	}

	tokens := Tokenize(req.Search, fields)
	f := Filter{tokens: tokens}

	var pieces []string
	if fields.IsNested() {
		pieces = append(pieces, fields.Parent+" = ?")
		f.args = append(f.args, *req.ParentID)
	}

	if clause, args := tokenClause(tokens, fields); clause != "" {
		pieces = append(pieces, "("+clause+")")
		f.args = append(f.args, args...)
	}

	if len(pieces) > 0 {
		f.where = "WHERE " + strings.Join(pieces, " AND ")
	}

	if req.Order != "" && fields.Orderable(req.Order) {
		f.orderBy = "ORDER BY " + req.Order
	}

	return f, nil
}

// tokenClause expands every token across every column of its class and
// OR-joins the comparisons.
func tokenClause(tokens []Token, fields Fields) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, tok := range tokens {
		for _, col := range fields.ForClass(tok.Class()) {
			if tok.Class() == ClassText {
				parts = append(parts, col+" LIKE ?")
			} else {
				parts = append(parts, col+" = ?")
			}
			args = append(args, tok.Arg())
		}
	}
	return strings.Join(parts, " OR "), args
}
