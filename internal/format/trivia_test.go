package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lispfmt/internal/token"
)

func tv(kind token.Kind, text string) token.Trivia {
	return token.Trivia{Kind: kind, Text: text}
}

func TestScanLeading(t *testing.T) {
	nl := tv(token.Newline, "\n")
	sp := tv(token.Space, "  ")

	l := scanLeading([]token.Trivia{nl, nl, nl, tv(token.Comment, "; a  "), nl, sp}, false)
	assert.True(t, l.newline)
	assert.False(t, l.blankAfter)
	assert.Equal(t, []comment{{text: "; a", blankBefore: true}}, l.comments)

	l = scanLeading([]token.Trivia{nl, nl, tv(token.Comment, "; a"), nl, nl}, true)
	assert.Equal(t, []comment{{text: "; a"}}, l.comments)
	assert.True(t, l.blankAfter)

	l = scanLeading([]token.Trivia{tv(token.Newline, "\r"), nl}, false)
	assert.True(t, l.newline)
	assert.False(t, l.blankAfter, "CR LF is one break")

	l = scanLeading([]token.Trivia{sp}, false)
	assert.False(t, l.newline)
	assert.Empty(t, l.comments)
}

func TestIsIgnoreComment(t *testing.T) {
	assert.True(t, isIgnoreComment("; lispfmt-ignore"))
	assert.True(t, isIgnoreComment(";;;lispfmt-ignore  "))
	assert.False(t, isIgnoreComment("; lispfmt-ignore please"))
	assert.False(t, isIgnoreComment("; lispfmt"))
}
