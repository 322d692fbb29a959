package lexer

import "strings"

// Числа:
//
//	number := sign? (hex | dec | ".inf" | ".nan")
//	dec    := (digits ("." digits?)? | "." digits) ([eE] sign? digits)?
//	hex    := 0[xX] (hexdigits ("." hexdigits?)? | "." hexdigits) ([pP] sign? hexdigits)?
//	digits := digit (digit | "_")*
//
// Разбор жадный и без возвратов между частями; опциональная часть,
// которая не разобралась полностью, не потребляется.

// numberLen returns the length of the longest number at the start of s, or 0.
func numberLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	rest := s[i:]
	if n := radixLen(rest, true); n > 0 {
		return i + n
	}
	if n := radixLen(rest, false); n > 0 {
		return i + n
	}
	if strings.HasPrefix(rest, ".inf") || strings.HasPrefix(rest, ".nan") {
		return i + 4
	}
	return 0
}

// isNumber reports whether s as a whole is one number literal.
func isNumber(s string) bool {
	n := numberLen(s)
	return n > 0 && n == len(s)
}

func radixLen(s string, hex bool) int {
	digit, expChars := isDec, "eE"
	i := 0
	if hex {
		if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
			return 0
		}
		digit, expChars = isHex, "pP"
		i = 2
	}

	if n := digitsLen(s[i:], digit); n > 0 {
		i += n
		if i < len(s) && s[i] == '.' {
			i++
			i += digitsLen(s[i:], digit)
		}
	} else if i < len(s) && s[i] == '.' {
		n := digitsLen(s[i+1:], digit)
		if n == 0 {
			return 0
		}
		i += 1 + n
	} else {
		return 0
	}

	if i < len(s) && strings.IndexByte(expChars, s[i]) >= 0 {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		// экспонента всегда десятичная для dec и шестнадцатеричная для hex
		if n := digitsLen(s[j:], digit); n > 0 {
			i = j + n
		}
	}
	return i
}

func digitsLen(s string, digit func(byte) bool) int {
	if s == "" || !digit(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && (digit(s[i]) || s[i] == '_') {
		i++
	}
	return i
}
