package lexer

import (
	"fmt"

	"lispfmt/internal/diag"
	"lispfmt/internal/token"
)

func (lx *Lexer) scanDelim() token.Token {
	start := lx.cursor.Mark()
	var kind token.Kind
	switch lx.cursor.Bump() {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	}
	return lx.emit(kind, start)
}

// scanPrefix: один ASCII байт из "#@?~^'`,"; валидность уже проверена isPrefixAt.
func (lx *Lexer) scanPrefix() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(token.Prefix, start)
}

// isHashDirective: "#!" или '#' + ASCII буква в самом начале файла.
func (lx *Lexer) isHashDirective() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' {
		return false
	}
	return b1 == '!' || (b1 >= 'a' && b1 <= 'z') || (b1 >= 'A' && b1 <= 'Z')
}

// scanHashDirective забирает строку до перевода строки (не включая).
func (lx *Lexer) scanHashDirective() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.HashDirective, start)
}

// scanUnknown превращает неклассифицируемую руну в Invalid и сообщает LEX1001.
// В режиме StopOnError Invalid забирает весь остаток входа.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	lx.cursor.Advance(sz)
	sp := lx.cursor.SpanFrom(start)

	msg := fmt.Sprintf("unknown character %q", r)
	if sz == 1 && r >= 0x80 {
		msg = fmt.Sprintf("invalid UTF-8 byte 0x%02X", lx.file.Content[sp.Start])
	}
	lx.errLex(diag.LexUnknownChar, sp, msg)

	if lx.opts.StopOnError {
		return lx.scanRest(start)
	}
	return lx.emit(token.Invalid, start)
}

// scanRest turns everything from start up to EOF into one Invalid token.
func (lx *Lexer) scanRest(start Mark) token.Token {
	lx.cursor.Reset(Mark(lx.cursor.limit))
	return lx.emit(token.Invalid, start)
}
