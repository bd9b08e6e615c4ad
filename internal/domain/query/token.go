// Package query compiles free-text search strings into parameterized SQL
// filter fragments.
package query

import (
	"strconv"
	"strings"
)

// Class is the type of column a token is matched against.
type Class int

// Field classes.
const (
	ClassText Class = iota
	ClassNumeric
	ClassFloat
)

func (c Class) String() string {
	switch c {
	case ClassText:
		return "text"
	case ClassNumeric:
		return "numeric"
	case ClassFloat:
		return "float"
	default:
		return "unknown"
	}
}

// EvaluationOrder is the order in which per-class token streams are
// concatenated. Callers and tests depend on it; do not reorder.
var EvaluationOrder = [...]Class{ClassFloat, ClassNumeric, ClassText}

// Token is one typed interpretation of a search word.
type Token struct {
	class   Class
	text    string
	numeric int64
	float   float64
}

// Text creates a text token for word.
func Text(word string) Token { return Token{class: ClassText, text: word} }

// Numeric creates an integer token.
func Numeric(v int64) Token { return Token{class: ClassNumeric, numeric: v} }

// Float creates a decimal token.
func Float(v float64) Token { return Token{class: ClassFloat, float: v} }

// Class returns the token's field class.
func (t Token) Class() Class { return t.class }

// Word returns the raw word of a text token.
func (t Token) Word() string { return t.text }

// Int returns the value of a numeric token.
func (t Token) Int() int64 { return t.numeric }

// Decimal returns the value of a float token.
func (t Token) Decimal() float64 { return t.float }

// Arg returns the value bound to the token's placeholder: a %word% pattern
// for text tokens, the raw value otherwise.
func (t Token) Arg() any {
	switch t.class {
	case ClassNumeric:
		return t.numeric
	case ClassFloat:
		return t.float
	default:
		return "%" + t.text + "%"
	}
}

func (t Token) String() string {
	switch t.class {
	case ClassNumeric:
		return "Numeric(" + strconv.FormatInt(t.numeric, 10) + ")"
	case ClassFloat:
		return "Float(" + strconv.FormatFloat(t.float, 'g', -1, 64) + ")"
	default:
		return "Text(" + strconv.Quote(t.text) + ")"
	}
}

// Tokenize splits search on whitespace and interprets every word once per
// declared field class, in EvaluationOrder. A class with no declared fields
// produces no tokens; a word that does not parse for a class is dropped for
// that class only. A word such as "1" therefore yields both Float(1) and
// Numeric(1); duplicates are kept on purpose.
func Tokenize(search string, fields Fields) []Token {
	words := strings.Fields(search)
	if len(words) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(words)*len(EvaluationOrder))
	for _, class := range EvaluationOrder {
		if len(fields.ForClass(class)) == 0 {
			continue
		}
		for _, w := range words {
			if tok, ok := parseAs(class, strings.TrimSpace(w)); ok {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

func parseAs(class Class, word string) (Token, bool) {
	switch class {
	case ClassFloat:
		v, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return Token{}, false
		}
		return Float(v), true
	case ClassNumeric:
		v, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return Token{}, false
		}
		return Numeric(v), true
	default:
		return Text(word), true
	}
}
