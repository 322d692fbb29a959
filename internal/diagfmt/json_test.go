package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lispfmt/internal/diag"
	"lispfmt/internal/lexer"
	"lispfmt/internal/parser"
	"lispfmt/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fnl", []byte("(fn main []\n  (print \"open\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 21, End: 27}, "unterminated string literal").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "inside this list"))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}))

	var output DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output), buf.String())
	require.Equal(t, 1, output.Count)
	require.Len(t, output.Diagnostics, 1)

	d := output.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "LEX1002", d.Code)
	assert.Equal(t, "test.fnl", d.Location.File)
	assert.Equal(t, uint32(2), d.Location.StartLine)
	assert.Equal(t, uint32(10), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "inside this list", d.Notes[0].Message)
}

func TestJSONMaxAndNoPositions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.fnl", []byte("$ % &"))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 2 * i, End: 2*i + 1}, "unknown character").
			WithNote(source.Span{File: id}, "note"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	assert.Equal(t, 2, out.Count)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
	assert.Nil(t, out.Diagnostics[0].Notes)
	assert.Equal(t, uint32(2), out.Diagnostics[1].Location.StartByte)
}

func TestTokensAndTree(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.fnl", []byte("(a) ; c\n")))
	tokens := lexer.Tokenize(sf, lexer.Options{})

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, tokens, fs))
	assert.Contains(t, pretty.String(), `LParen         "(" at 1:1-1:2`)
	assert.Contains(t, pretty.String(), "(trailing: Space, Comment)")
	assert.Contains(t, pretty.String(), "End")

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, tokens))
	var toks []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &toks))
	require.Len(t, toks, 4)
	assert.Equal(t, "RParen", toks[2].Kind)
	require.Len(t, toks[2].Trailing, 2)
	assert.Equal(t, "; c", toks[2].Trailing[1].Text)

	tree := parser.Parse(sf, tokens, parser.Options{})
	var tj bytes.Buffer
	require.NoError(t, FormatTreeJSON(&tj, tree))
	var root NodeOutput
	require.NoError(t, json.Unmarshal(tj.Bytes(), &root))
	assert.Equal(t, "Root", root.Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "List", root.Children[0].Kind)
	assert.Equal(t, "End", root.Children[1].Kind)
}
