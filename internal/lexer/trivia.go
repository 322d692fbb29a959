package lexer

import (
	"lispfmt/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробельные символы (кроме \r и \n) коалесцируются в один Space
//   - каждый \r и каждый \n — отдельный Newline
//   - ; до \n (не включая) — Comment
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.hold = append(lx.hold, lx.trivia(token.Newline, start))
			continue
		}
		if tv, ok := lx.scanSpaceOrComment(); ok {
			lx.hold = append(lx.hold, tv)
			continue
		}
		break
	}
}

// collectTrailingTrivia забирает пробелы и комментарии до конца строки.
// Перевод строки остаётся для Leading следующего токена.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for {
		tv, ok := lx.scanSpaceOrComment()
		if !ok {
			return out
		}
		out = append(out, tv)
	}
}

func (lx *Lexer) scanSpaceOrComment() (token.Trivia, bool) {
	if lx.cursor.EOF() {
		return token.Trivia{}, false
	}
	start := lx.cursor.Mark()
	if lx.cursor.Eat(';') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.trivia(token.Comment, start), true
	}
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isSpace(r) {
			break
		}
		lx.cursor.Advance(sz)
	}
	if lx.cursor.Mark() == start {
		return token.Trivia{}, false
	}
	return lx.trivia(token.Space, start), true
}

func (lx *Lexer) trivia(kind token.Kind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{Kind: kind, Span: sp, Text: lx.file.Content[sp.Start:sp.End]}
}
