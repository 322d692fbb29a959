package lexer

import (
	"lispfmt/internal/diag"
	"lispfmt/internal/token"
)

// "..." — '\' экранирует любой следующий символ, переводы строк внутри допустимы.
// Незакрытая строка становится Invalid до конца файла (LEX1002).
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			return lx.emit(token.String, start)
		}
		if b == '\\' {
			_, sz := lx.peekRune()
			lx.cursor.Advance(sz)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
