package doc

import (
	"strconv"
	"strings"
)

// String prints the algebra itself, e.g. group(concat("[", nest(1, ...))).
// Used by `lispfmt parse --doc` and in tests.
func (d Doc) String() string {
	var b strings.Builder
	d.debug(&b)
	return b.String()
}

func (d Doc) debug(b *strings.Builder) {
	switch d.kind {
	case kindNil:
		b.WriteString("nil")
	case kindText:
		b.WriteString(strconv.Quote(d.text))
	case kindLine:
		b.WriteString("line")
	case kindHardline:
		b.WriteString("hardline")
	case kindBreakParent:
		b.WriteString("breakParent")
	case kindGroup:
		b.WriteString("group(")
		d.parts[0].debug(b)
		b.WriteByte(')')
	case kindNest:
		b.WriteString("nest(")
		b.WriteString(strconv.Itoa(d.n))
		b.WriteString(", ")
		d.parts[0].debug(b)
		b.WriteByte(')')
	case kindAlign:
		b.WriteString("align(")
		d.parts[0].debug(b)
		b.WriteByte(')')
	case kindConcat:
		b.WriteString("concat(")
		for i, p := range d.parts {
			if i > 0 {
				b.WriteString(", ")
			}
			p.debug(b)
		}
		b.WriteByte(')')
	}
}
