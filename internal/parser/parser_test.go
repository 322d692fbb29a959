package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lispfmt/internal/diag"
	"lispfmt/internal/parser"
	"lispfmt/internal/source"
	"lispfmt/internal/syntax"
	"lispfmt/internal/testkit"
	"lispfmt/internal/token"
)

func parse(t *testing.T, input string) (*syntax.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.fnl", []byte(input)))
	bag := diag.NewBag(32)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, testkit.CheckTree(tree))
	return tree, bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// topKinds returns the kinds of Root's children without the End token.
func topKinds(tree *syntax.Tree) []token.Kind {
	children := tree.Children(tree.RootElem())
	out := make([]token.Kind, 0, len(children))
	for _, ch := range children[:len(children)-1] {
		out = append(out, tree.Kind(ch))
	}
	return out
}

func TestDump(t *testing.T) {
	tree, bag := parse(t, "(foo 1)\n")
	require.Zero(t, bag.Len())
	want := strings.Join([]string{
		`Root@0..8`,
		`  List@0..7`,
		`    LParen@0..1 "("`,
		`    Symbol@1..4 "foo"`,
		`    Number@5..6 "1"`,
		`    RParen@6..7 ")"`,
		`  End@8..8 ""`,
		``,
	}, "\n")
	assert.Equal(t, want, tree.String())
}

func TestContainers(t *testing.T) {
	tree, bag := parse(t, "(a) [b c] {:k v :k2 [1]} 'x #(y) `(,z)")
	require.Zero(t, bag.Len(), "%v", bag.Items())
	assert.Equal(t, []token.Kind{
		token.List, token.Sequence, token.Table, token.Prefixed, token.Prefixed, token.Prefixed,
	}, topKinds(tree))

	table := tree.Children(tree.RootElem())[2]
	pairs := tree.Children(table)
	require.Len(t, pairs, 4)
	assert.Equal(t, token.Pair, tree.Kind(pairs[1]))
	assert.Equal(t, token.Pair, tree.Kind(pairs[2]))
	value := tree.Children(pairs[2])[1]
	assert.Equal(t, token.Sequence, tree.Kind(value))

	quasi := tree.Children(tree.RootElem())[5]
	list := tree.Children(quasi)[1]
	inner := tree.Children(list)[1]
	assert.Equal(t, token.Prefixed, tree.Kind(inner))
}

func TestNodeSpanCoversChildren(t *testing.T) {
	tree, _ := parse(t, "  ( a  b ) ; c\n")
	list := tree.Children(tree.RootElem())[0]
	sp := tree.Span(list)
	assert.Equal(t, uint32(2), sp.Start)
	assert.Equal(t, uint32(10), sp.End)
	first, ok := tree.FirstToken(list)
	require.True(t, ok)
	last, ok := tree.LastToken(list)
	require.True(t, ok)
	assert.Equal(t, "(", tree.Tokens[first].Text)
	assert.Equal(t, ")", tree.Tokens[last].Text)
}

func TestRootSpansWholeFile(t *testing.T) {
	tree, _ := parse(t, "\n\n; only comments\n")
	root := tree.Node(tree.RootElem())
	assert.Equal(t, uint32(0), root.Span.Start)
	assert.Equal(t, tree.File.Len(), root.Span.End)
	require.Len(t, root.Children, 1)
	assert.Equal(t, token.End, tree.Kind(root.Children[0]))
}

func TestMissingDelimiterAtEOF(t *testing.T) {
	tree, bag := parse(t, "(foo (bar)")
	require.Equal(t, []diag.Code{diag.SynMissingDelimiter}, codes(bag))
	d := bag.Items()[0]
	assert.Equal(t, `missing closing delimiter ")" for List`, d.Message)
	assert.Equal(t, uint32(0), d.Primary.Start)
	assert.Equal(t, uint32(1), d.Primary.End)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "reached end of input", d.Notes[0].Msg)

	list := tree.Node(tree.Children(tree.RootElem())[0])
	assert.True(t, list.Erroneous)
	assert.Equal(t, token.List, list.Kind)
}

func TestEnclosingCloserEndsInnerContainer(t *testing.T) {
	tree, bag := parse(t, "[a (b] c)")
	assert.Equal(t, []diag.Code{diag.SynMissingDelimiter, diag.SynUnexpectedToken}, codes(bag))

	seq := tree.Children(tree.RootElem())[0]
	assert.Equal(t, token.Sequence, tree.Kind(seq))
	assert.False(t, tree.Node(seq).Erroneous)
	inner := tree.Children(seq)[2]
	assert.Equal(t, token.List, tree.Kind(inner))
	assert.True(t, tree.Node(inner).Erroneous)
	assert.Equal(t, `missing closing delimiter ")" for List`, bag.Items()[0].Message)
	assert.Equal(t, `found "]" first`, bag.Items()[0].Notes[0].Msg)
}

func TestStrayCloserIsConsumed(t *testing.T) {
	tree, bag := parse(t, "a ) b")
	assert.Equal(t, []diag.Code{diag.SynUnexpectedToken}, codes(bag))
	assert.Equal(t, []token.Kind{token.Symbol, token.RParen, token.Symbol}, topKinds(tree))

	_, bag = parse(t, "(a])")
	assert.Equal(t, []diag.Code{diag.SynUnexpectedToken}, codes(bag))
}

func TestOddTable(t *testing.T) {
	tree, bag := parse(t, "{:a 1 :b}")
	require.Equal(t, []diag.Code{diag.SynMissingExpression}, codes(bag))
	assert.Equal(t, `missing value for table key ":b"`, bag.Items()[0].Message)

	table := tree.Children(tree.RootElem())[0]
	pairs := tree.Children(table)
	require.Len(t, pairs, 4)
	assert.False(t, tree.Node(pairs[1]).Erroneous)
	assert.True(t, tree.Node(pairs[2]).Erroneous)
	assert.Len(t, tree.Children(pairs[2]), 1)
}

func TestInvalidTokenIsLeafWithoutSecondDiagnostic(t *testing.T) {
	tree, bag := parse(t, "(a @ b)")
	assert.Equal(t, []diag.Code{diag.LexUnknownChar}, codes(bag))
	list := tree.Children(tree.RootElem())[0]
	assert.Equal(t, token.Invalid, tree.Kind(tree.Children(list)[2]))
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.fnl", []byte(") ) ) )")))
	bag := diag.NewBag(32)
	parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	assert.Equal(t, 2, bag.Len())
}

func TestParseIsDeterministic(t *testing.T) {
	input := "{:a [1 2 (x] 'y} ; c\n(z"
	first, _ := parse(t, input)
	second, _ := parse(t, input)
	assert.Equal(t, first.String(), second.String())
}

func TestParseRejectsStreamWithoutEnd(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.fnl", []byte("a")))
	assert.Panics(t, func() {
		parser.Parse(file, []token.Token{{Kind: token.Symbol, Text: "a"}}, parser.Options{})
	})
}
