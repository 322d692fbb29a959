package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lispfmt/internal/doc"
	"lispfmt/internal/token"
)

func TestTokenizeAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.fnl")
	require.NoError(t, os.WriteFile(path, []byte("(a [1 2])\n"), 0o600))

	tr, err := Tokenize(path, 0)
	require.NoError(t, err)
	assert.False(t, tr.Bag.HasErrors())
	assert.Equal(t, token.End, tr.Tokens[len(tr.Tokens)-1].Kind)

	pr, err := Parse(path, 0)
	require.NoError(t, err)
	d, ok := pr.Document()
	require.True(t, ok)
	assert.Equal(t, "(a [1 2])", doc.Render(d, 100))

	_, err = Parse(filepath.Join(t.TempDir(), "missing.fnl"), 0)
	assert.Error(t, err)
}

func TestParseSourceWithErrors(t *testing.T) {
	pr := ParseSource("<stdin>", []byte("(a"), 10)
	assert.True(t, pr.Bag.HasErrors())
	_, ok := pr.Document()
	assert.False(t, ok)

	tr := TokenizeSource("<stdin>", []byte("\x00"), 10)
	assert.True(t, tr.Bag.HasErrors())
}
