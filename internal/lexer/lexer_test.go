package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lispfmt/internal/diag"
	"lispfmt/internal/lexer"
	"lispfmt/internal/source"
	"lispfmt/internal/testkit"
	"lispfmt/internal/token"
)

func lex(t *testing.T, input string, opts lexer.Options) ([]token.Token, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.fnl", []byte(input)))
	bag := diag.NewBag(32)
	if opts.Reporter == nil {
		opts.Reporter = diag.BagReporter{Bag: bag}
	}
	return lexer.Tokenize(file, opts), file, bag
}

// kinds strips the trailing End token.
func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens[:len(tokens)-1] {
		out = append(out, tok.Kind)
	}
	return out
}

func texts(tokens []token.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens[:len(tokens)-1] {
		out = append(out, tok.Text)
	}
	return out
}

func TestSingleTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Symbol},
		{"+", token.Symbol},
		{"a.b.c", token.Symbol},
		{"->>", token.Symbol},
		{"~=", token.Symbol},
		{"#", token.Symbol},
		{"?", token.Symbol},
		{"foo?", token.Symbol},
		{"λ", token.Symbol},
		{"1.5foo", token.Symbol},
		{":", token.Symbol},
		{":123", token.Symbol},
		{"trueish", token.Symbol},
		{"false?", token.Symbol},
		{"42", token.Number},
		{"-1_000.5e3", token.Number},
		{"0xFFp2", token.Number},
		{".nan", token.Number},
		{"true", token.Boolean},
		{"false", token.Boolean},
		{":key", token.Keyword},
		{":a.b", token.Keyword},
		{"::x", token.Keyword},
		{`"str"`, token.String},
		{`"with \" quote"`, token.String},
		{"\"multi\nline\"", token.String},
		{`"\\"`, token.String},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, _, bag := lex(t, tt.input, lexer.Options{})
			require.Len(t, tokens, 2, "tokens: %v", texts(tokens))
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.input, tokens[0].Text)
			assert.Equal(t, token.End, tokens[1].Kind)
			assert.Zero(t, bag.Len())
		})
	}
}

func TestTokenSequences(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
		texts []string
	}{
		{
			input: "(foo 1 :a)",
			kinds: []token.Kind{token.LParen, token.Symbol, token.Number, token.Keyword, token.RParen},
			texts: []string{"(", "foo", "1", ":a", ")"},
		},
		{
			input: "[{}]",
			kinds: []token.Kind{token.LBracket, token.LBrace, token.RBrace, token.RBracket},
			texts: []string{"[", "{", "}", "]"},
		},
		{
			input: "'foo",
			kinds: []token.Kind{token.Prefix, token.Symbol},
			texts: []string{"'", "foo"},
		},
		{
			input: "`(a ,b ,@c)",
			kinds: []token.Kind{
				token.Prefix, token.LParen, token.Symbol,
				token.Prefix, token.Symbol, token.Prefix, token.Prefix, token.Symbol, token.RParen,
			},
			texts: []string{"`", "(", "a", ",", "b", ",", "@", "c", ")"},
		},
		{
			input: "(#foo ?x ^y)",
			kinds: []token.Kind{
				token.LParen, token.Prefix, token.Symbol, token.Prefix, token.Symbol,
				token.Prefix, token.Symbol, token.RParen,
			},
		},
		{
			input: "a#b",
			kinds: []token.Kind{token.Symbol},
			texts: []string{"a#b"},
		},
		{
			input: "a@b",
			kinds: []token.Kind{token.Symbol, token.Prefix, token.Symbol},
			texts: []string{"a", "@", "b"},
		},
		{
			input: "x\"s\"",
			kinds: []token.Kind{token.Symbol, token.String},
		},
		{
			input: "~=x",
			kinds: []token.Kind{token.Symbol, token.Symbol},
			texts: []string{"~=", "x"},
		},
		{
			input: "'~=",
			kinds: []token.Kind{token.Prefix, token.Symbol},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, _, bag := lex(t, tt.input, lexer.Options{})
			assert.Equal(t, tt.kinds, kinds(tokens))
			if tt.texts != nil {
				assert.Equal(t, tt.texts, texts(tokens))
			}
			assert.Zero(t, bag.Len())
		})
	}
}

func TestHashDirectiveOnlyAtFileStart(t *testing.T) {
	tokens, _, _ := lex(t, "#!/usr/bin/env fennel\n(print #foo)", lexer.Options{})
	require.Equal(t, token.HashDirective, tokens[0].Kind)
	assert.Equal(t, "#!/usr/bin/env fennel", tokens[0].Text)
	assert.Equal(t, []token.Kind{
		token.HashDirective, token.LParen, token.Symbol, token.Prefix, token.Symbol, token.RParen,
	}, kinds(tokens))

	tokens, _, _ = lex(t, " #!x", lexer.Options{})
	assert.Equal(t, token.Prefix, tokens[0].Kind, "directive must be the very first byte")

	tokens, _, _ = lex(t, "#(a)", lexer.Options{})
	assert.Equal(t, token.Prefix, tokens[0].Kind)
}

func TestTriviaSplit(t *testing.T) {
	input := "; head\n\n(a  ; same line\n\r\n  b)\t; tail\n"
	tokens, file, _ := lex(t, input, lexer.Options{})
	require.NoError(t, testkit.CheckCoverage(file, tokens))

	lparen := tokens[0]
	assert.Equal(t, []token.Kind{token.Comment, token.Newline, token.Newline}, triviaKinds(lparen.Leading))
	assert.Equal(t, "; head", lparen.Leading[0].Text)

	a := tokens[1]
	assert.Equal(t, []token.Kind{token.Space, token.Comment}, triviaKinds(a.Trailing))
	assert.Equal(t, "; same line", a.Trailing[1].Text)

	b := tokens[2]
	// CR and LF are separate pieces
	assert.Equal(t, []token.Kind{token.Newline, token.Newline, token.Newline, token.Space}, triviaKinds(b.Leading))
	assert.Equal(t, "\r", b.Leading[1].Text)

	rparen := tokens[3]
	assert.Equal(t, []token.Kind{token.Space, token.Comment}, triviaKinds(rparen.Trailing))

	end := tokens[4]
	assert.Equal(t, token.End, end.Kind)
	assert.Equal(t, []token.Kind{token.Newline}, triviaKinds(end.Leading))
}

func TestEndCarriesTrailingFileTrivia(t *testing.T) {
	tokens, file, _ := lex(t, "x\n\n; bye", lexer.Options{})
	require.Len(t, tokens, 2)
	end := tokens[1]
	assert.Equal(t, token.End, end.Kind)
	assert.Equal(t, []token.Kind{token.Newline, token.Newline, token.Comment}, triviaKinds(end.Leading))
	assert.Equal(t, file.Len(), end.Span.Start)
	assert.True(t, end.Span.Empty())
}

func TestNextAfterEndKeepsReturningEnd(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("e.fnl", []byte(" a "))), lexer.Options{})
	assert.Equal(t, token.Symbol, lx.Next().Kind)
	assert.Equal(t, token.End, lx.Next().Kind)
	for i := 0; i < 3; i++ {
		tok := lx.Next()
		assert.Equal(t, token.End, tok.Kind)
		assert.Empty(t, tok.Leading)
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, file, bag := lex(t, "", lexer.Options{})
	require.Len(t, tokens, 1)
	assert.Equal(t, token.End, tokens[0].Kind)
	assert.NoError(t, testkit.CheckCoverage(file, tokens))
	assert.Zero(t, bag.Len())
}

func TestUnterminatedString(t *testing.T) {
	tokens, file, bag := lex(t, "(a \"oops\n b)", lexer.Options{})
	require.NoError(t, testkit.CheckCoverage(file, tokens))
	assert.Equal(t, []token.Kind{token.LParen, token.Symbol, token.Invalid}, kinds(tokens))
	assert.Equal(t, "\"oops\n b)", tokens[2].Text)

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.LexUnterminatedString, d.Code)
	assert.Equal(t, uint32(3), d.Primary.Start)
}

func TestUnknownCharacterResumes(t *testing.T) {
	tokens, file, bag := lex(t, "(a @ b \x00 c)", lexer.Options{})
	require.NoError(t, testkit.CheckCoverage(file, tokens))
	assert.Equal(t, []token.Kind{
		token.LParen, token.Symbol, token.Invalid, token.Symbol, token.Invalid, token.Symbol, token.RParen,
	}, kinds(tokens))

	require.Equal(t, 2, bag.Len())
	for _, d := range bag.Items() {
		assert.Equal(t, diag.LexUnknownChar, d.Code)
		assert.Equal(t, uint32(1), d.Primary.Len())
	}
}

func TestInvalidUTF8Byte(t *testing.T) {
	tokens, file, bag := lex(t, "a \xff b", lexer.Options{})
	require.NoError(t, testkit.CheckCoverage(file, tokens))
	assert.Equal(t, []token.Kind{token.Symbol, token.Invalid, token.Symbol}, kinds(tokens))
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, "invalid UTF-8 byte 0xFF", bag.Items()[0].Message)
}

func TestStopOnErrorAbsorbsRest(t *testing.T) {
	tokens, file, bag := lex(t, "(a @ b ' c)\n", lexer.Options{StopOnError: true})
	require.NoError(t, testkit.CheckCoverage(file, tokens))
	assert.Equal(t, []token.Kind{token.LParen, token.Symbol, token.Invalid}, kinds(tokens))
	assert.Equal(t, "@ b ' c)\n", tokens[2].Text)
	assert.Equal(t, 1, bag.Len())
}

func TestNilReporterIsAllowed(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("n.fnl", []byte("\"never closed")))
	tokens := lexer.Tokenize(file, lexer.Options{})
	assert.Equal(t, []token.Kind{token.Invalid}, kinds(tokens))
}

// Total coverage over a corpus of well-formed and broken inputs.
func TestTotalCoverage(t *testing.T) {
	corpus := []string{
		"",
		" ",
		"\n\n\n",
		"\r\n\r\n",
		"; only a comment",
		"(fn f [x]\n  ;; doc\n  (+ x 1)) ; trailing\n",
		"{:a 1 :b [1 2 3] \"k\" #(print $)}",
		"#!/usr/bin/env fennel\n(print \"hi\")",
		"`(let [,x 1] ,@body)",
		"(a\t b c)",
		"(unbalanced",
		"))) stray",
		"\"unterminated",
		"@ ' ` ,",
		"x\x01y",
		"\xef\xbb\xbf(bom)",
		"(λ [α β] (.. α β))",
		strings.Repeat("(", 50) + strings.Repeat(")", 50),
	}
	for i, input := range corpus {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tokens, file, _ := lex(t, input, lexer.Options{})
			require.NoError(t, testkit.CheckCoverage(file, tokens))
			assert.Equal(t, input, testkit.Reconstruct(tokens))
		})
	}
}

func triviaKinds(ts []token.Trivia) []token.Kind {
	out := make([]token.Kind, 0, len(ts))
	for _, tv := range ts {
		out = append(out, tv.Kind)
	}
	return out
}
