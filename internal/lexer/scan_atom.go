package lexer

import (
	"lispfmt/internal/token"
)

// scanAtom сканирует максимальный symbol-run и классифицирует его целиком:
// число, true/false, :keyword или обычный символ.
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanAtom() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	n := symbolRunLen(rest)
	lx.cursor.Advance(n)
	return lx.emit(classifyAtom(rest[:n]), start)
}

func classifyAtom(text string) token.Kind {
	switch {
	case isNumber(text):
		return token.Number
	case text == "true" || text == "false":
		return token.Boolean
	case len(text) > 1 && text[0] == ':' && !isNumber(text[1:]):
		return token.Keyword
	default:
		return token.Symbol
	}
}
