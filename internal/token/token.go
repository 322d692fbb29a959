package token

import (
	"strings"

	"lispfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// StartsExpr reports whether the token can begin an expression.
func (t Token) StartsExpr() bool {
	return t.Kind.IsLiteral() || t.Kind.IsOpen() || t.Kind == Prefix || t.Kind == HashDirective
}

// WriteSource appends the exact source text of the token, trivia included, to b.
func (t Token) WriteSource(b *strings.Builder) {
	for _, tv := range t.Leading {
		b.WriteString(tv.Text)
	}
	b.WriteString(t.Text)
	for _, tv := range t.Trailing {
		b.WriteString(tv.Text)
	}
}
