package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// peekRune читает текущую руну; size == 0 на EOF.
// Невалидный UTF-8 байт возвращается как utf8.RuneError с size 1.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(lx.cursor.Rest())
}

// ===== Классификаторы =====

func isNewline(r rune) bool { return r == '\n' || r == '\r' }

// isSpace: пробельный символ, не являющийся переводом строки.
func isSpace(r rune) bool {
	return !isNewline(r) && unicode.IsSpace(r)
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

const prefixChars = "#@?~^'`,"

func isPrefixChar(b byte) bool {
	return strings.IndexByte(prefixChars, b) >= 0
}

// isSymbolRune reports whether r may appear inside a symbol run.
func isSymbolRune(r rune) bool {
	if r < utf8.RuneSelf {
		b := byte(r)
		if isDelim(b) || strings.IndexByte("\"'`,~;@", b) >= 0 {
			return false
		}
	}
	return !unicode.IsControl(r) && !unicode.IsSpace(r)
}

// symbolRunLen returns the byte length of the maximal symbol run at the start of s.
func symbolRunLen(s string) int {
	i := 0
	for i < len(s) {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && sz <= 1 {
			break
		}
		if !isSymbolRune(r) {
			break
		}
		i += sz
	}
	return i
}

// startsExpr reports whether s begins with something that can open an expression.
func startsExpr(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '(', '[', '{', '"':
		return true
	}
	return strings.HasPrefix(s, "~=") || symbolRunLen(s) > 0
}

// isPrefixAt: префикс валиден только если за ним без пробелов идёт
// начало выражения или другой валидный префикс.
func isPrefixAt(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isPrefixChar(s[i]) || strings.HasPrefix(s[i:], "~=") {
			return false
		}
		if startsExpr(s[i+1:]) {
			return true
		}
	}
	return false
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
