package token_test

import (
	"strings"
	"testing"

	"lispfmt/internal/source"
	"lispfmt/internal/token"
)

func TestKindClassification(t *testing.T) {
	for _, k := range []token.Kind{token.Space, token.Newline, token.Comment} {
		if !k.IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
		if k.IsContainer() || k.IsLiteral() {
			t.Fatalf("%v must NOT be container or literal", k)
		}
	}
	for _, k := range []token.Kind{token.Root, token.List, token.Sequence, token.Table, token.Pair, token.Prefixed} {
		if !k.IsContainer() {
			t.Fatalf("%v should be a container", k)
		}
	}
	for _, k := range []token.Kind{token.Symbol, token.Number, token.String, token.Keyword, token.Boolean} {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
}

func TestDelimiterPairs(t *testing.T) {
	cases := []struct {
		open, closing, container token.Kind
		text                     string
	}{
		{token.LParen, token.RParen, token.List, "()"},
		{token.LBracket, token.RBracket, token.Sequence, "[]"},
		{token.LBrace, token.RBrace, token.Table, "{}"},
	}
	for _, c := range cases {
		if !c.open.IsOpen() || !c.closing.IsClose() {
			t.Fatalf("%v/%v delimiter classification broken", c.open, c.closing)
		}
		if c.open.Closer() != c.closing {
			t.Fatalf("%v.Closer() = %v", c.open, c.open.Closer())
		}
		if c.open.Container() != c.container {
			t.Fatalf("%v.Container() = %v", c.open, c.open.Container())
		}
		o, cl := c.container.Delims()
		if o+cl != c.text {
			t.Fatalf("%v.Delims() = %q %q", c.container, o, cl)
		}
	}
	if token.Symbol.Closer() != token.Invalid {
		t.Fatal("non-delimiter must have no closer")
	}
}

func TestKindString(t *testing.T) {
	if token.HashDirective.String() != "HashDirective" || token.Prefixed.String() != "Prefixed" {
		t.Fatalf("unexpected names: %s %s", token.HashDirective, token.Prefixed)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("out-of-range kind must not panic")
	}
}

func TestTokenWriteSourceAndStartsExpr(t *testing.T) {
	tok := token.Token{
		Kind: token.Symbol,
		Span: source.Span{Start: 3, End: 6},
		Text: "foo",
		Leading: []token.Trivia{
			{Kind: token.Newline, Span: source.Span{Start: 0, End: 1}, Text: "\n"},
			{Kind: token.Space, Span: source.Span{Start: 1, End: 3}, Text: "  "},
		},
		Trailing: []token.Trivia{
			{Kind: token.Space, Span: source.Span{Start: 6, End: 7}, Text: " "},
			{Kind: token.Comment, Span: source.Span{Start: 7, End: 10}, Text: "; x"},
		},
	}
	var b strings.Builder
	tok.WriteSource(&b)
	if b.String() != "\n  foo ; x" {
		t.Fatalf("WriteSource = %q", b.String())
	}
	if !tok.StartsExpr() {
		t.Fatal("symbol starts an expression")
	}
	if (token.Token{Kind: token.RParen}).StartsExpr() {
		t.Fatal("closing delimiter cannot start an expression")
	}
}
