package lexer

import (
	"strings"

	"lispfmt/internal/source"
	"lispfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // накопленные leading trivia
	done   bool           // End уже выдан
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен с собранными Leading и Trailing.
// Последний токен файла — End, его Leading содержит хвостовые trivia.
// После End всегда возвращает пустой End.
func (lx *Lexer) Next() token.Token {
	if lx.done {
		return token.Token{Kind: token.End, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		tok := token.Token{Kind: token.End, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	tok := lx.scanToken()
	tok.Leading = lx.hold
	lx.hold = nil
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Tokenize lexes the whole file. The returned slice always ends with End.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.End {
			return out
		}
	}
}

// scanToken picks a scanner by the current byte. Order matters: prefix
// characters # ? ^ are also symbol constituents, so the prefix check runs
// before symbol runs.
func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '#' && lx.cursor.Off == 0 && lx.isHashDirective():
		return lx.scanHashDirective()
	case isDelim(ch):
		return lx.scanDelim()
	case ch == '"':
		return lx.scanString()
	case isPrefixAt(lx.cursor.Rest()):
		return lx.scanPrefix()
	case strings.HasPrefix(lx.cursor.Rest(), "~="):
		start := lx.cursor.Mark()
		lx.cursor.Advance(2)
		return lx.emit(token.Symbol, start)
	}
	if symbolRunLen(lx.cursor.Rest()) > 0 {
		return lx.scanAtom()
	}
	return lx.scanUnknown()
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Content[sp.Start:sp.End]}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
