package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type cmd struct {
	indent int
	mode   mode
	doc    Doc
}

type renderer struct {
	width   int
	buf     []byte
	col     int // logical column, pending indentation included
	pending int // indentation not yet written
}

// Render lays d out within width columns. Indentation is written lazily, so
// lines that stay empty carry no spaces, and trailing spaces are trimmed
// before every break the renderer produces.
func Render(d Doc, width int) string {
	r := &renderer{width: width}
	stack := []cmd{{indent: 0, mode: modeBreak, doc: d}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c.doc.kind {
		case kindNil, kindBreakParent:
		case kindText:
			r.text(c.doc)
		case kindLine:
			if c.mode == modeFlat {
				r.write(" ", 1)
			} else {
				r.newline(c.indent)
			}
		case kindHardline:
			r.newline(c.indent)
		case kindConcat:
			for i := len(c.doc.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, doc: c.doc.parts[i]})
			}
		case kindNest:
			stack = append(stack, cmd{indent: c.indent + c.doc.n, mode: c.mode, doc: c.doc.parts[0]})
		case kindAlign:
			stack = append(stack, cmd{indent: r.col, mode: c.mode, doc: c.doc.parts[0]})
		case kindGroup:
			m := modeBreak
			switch {
			case c.mode == modeFlat:
				m = modeFlat
			case !c.doc.hard && fits(c.doc.parts[0], stack, r.width-r.col):
				m = modeFlat
			}
			stack = append(stack, cmd{indent: c.indent, mode: m, doc: c.doc.parts[0]})
		}
	}
	return string(r.buf)
}

func (r *renderer) text(d Doc) {
	if d.multi {
		r.flushIndent()
		r.buf = append(r.buf, d.text...)
		r.col = d.width
		return
	}
	r.write(d.text, d.width)
}

func (r *renderer) write(s string, w int) {
	r.flushIndent()
	r.buf = append(r.buf, s...)
	r.col += w
}

func (r *renderer) flushIndent() {
	for ; r.pending > 0; r.pending-- {
		r.buf = append(r.buf, ' ')
	}
}

func (r *renderer) newline(indent int) {
	n := len(r.buf)
	for n > 0 && (r.buf[n-1] == ' ' || r.buf[n-1] == '\t') {
		n--
	}
	r.buf = append(r.buf[:n], '\n')
	r.pending = indent
	r.col = indent
}

// fits reports whether next, rendered flat, fits in w columns together with
// whatever follows it on the same line. The remaining commands are measured in
// their own mode, so the first break-mode Line ends the check successfully.
func fits(next Doc, rest []cmd, w int) bool {
	type fcmd struct {
		mode mode
		doc  Doc
	}
	stack := []fcmd{{mode: modeFlat, doc: next}}
	restIdx := len(rest)
	for w >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, fcmd{mode: rest[restIdx].mode, doc: rest[restIdx].doc})
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c.doc.kind {
		case kindNil:
		case kindText:
			if c.doc.multi {
				if c.mode == modeFlat {
					return false
				}
				first := c.doc.text[:strings.IndexByte(c.doc.text, '\n')]
				return w-runewidth.StringWidth(first) >= 0
			}
			w -= c.doc.width
		case kindLine:
			if c.mode == modeBreak {
				return true
			}
			w--
		case kindHardline:
			return c.mode == modeBreak
		case kindBreakParent:
			if c.mode == modeFlat {
				return false
			}
		case kindConcat:
			for i := len(c.doc.parts) - 1; i >= 0; i-- {
				stack = append(stack, fcmd{mode: c.mode, doc: c.doc.parts[i]})
			}
		case kindNest, kindAlign:
			stack = append(stack, fcmd{mode: c.mode, doc: c.doc.parts[0]})
		case kindGroup:
			m := c.mode
			if c.doc.hard {
				m = modeBreak
			}
			stack = append(stack, fcmd{mode: m, doc: c.doc.parts[0]})
		}
	}
	return false
}
