// Package doc implements the document algebra used by the formatter and the
// standard two-pass width-fitting renderer for it.
//
// A Doc is an immutable value built from a handful of primitives: Nil, Text,
// Line (a space when its group is flat, a break otherwise), Hardline,
// BreakParent, Group, Nest, Align and Concat. Hard breaks propagate: a group
// that contains a Hardline or BreakParent anywhere inside is always broken.
package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type kind uint8

const (
	kindNil kind = iota
	kindText
	kindLine
	kindHardline
	kindBreakParent
	kindGroup
	kindNest
	kindAlign
	kindConcat
)

// Doc is a node of the document algebra. The zero value is Nil.
type Doc struct {
	kind  kind
	text  string
	width int // display width of text (of its last line when multiline)
	multi bool
	n     int
	parts []Doc
	hard  bool // contains a forced break
}

// Nil renders nothing.
func Nil() Doc { return Doc{} }

// Text is literal text. It is never split by the renderer. Text may contain
// newlines (multi-line string literals, verbatim regions); such text keeps a
// group from rendering flat but does not break enclosing groups.
func Text(s string) Doc {
	if s == "" {
		return Nil()
	}
	d := Doc{kind: kindText, text: s}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		d.multi = true
		d.width = runewidth.StringWidth(s[i+1:])
	} else {
		d.width = runewidth.StringWidth(s)
	}
	return d
}

// Line is a fillable break: one space in a flat group, a newline otherwise.
func Line() Doc { return Doc{kind: kindLine} }

// Hardline always breaks and forces every enclosing group to break.
func Hardline() Doc { return Doc{kind: kindHardline, hard: true} }

// BreakParent renders nothing but forces every enclosing group to break.
func BreakParent() Doc { return Doc{kind: kindBreakParent, hard: true} }

// Group renders d flat if it fits in the remaining width, broken otherwise.
func Group(d Doc) Doc {
	if d.kind == kindNil {
		return d
	}
	return Doc{kind: kindGroup, parts: []Doc{d}, hard: d.hard}
}

// Nest increases the indentation of breaks inside d by n columns.
func Nest(n int, d Doc) Doc {
	if d.kind == kindNil {
		return d
	}
	return Doc{kind: kindNest, n: n, parts: []Doc{d}, hard: d.hard}
}

// Align sets the indentation of breaks inside d to the column where d starts.
func Align(d Doc) Doc {
	if d.kind == kindNil {
		return d
	}
	return Doc{kind: kindAlign, parts: []Doc{d}, hard: d.hard}
}

// Concat joins docs left to right. Nil parts are dropped.
func Concat(docs ...Doc) Doc {
	parts := make([]Doc, 0, len(docs))
	hard := false
	for _, d := range docs {
		switch d.kind {
		case kindNil:
			continue
		case kindConcat:
			parts = append(parts, d.parts...)
		default:
			parts = append(parts, d)
		}
		hard = hard || d.hard
	}
	switch len(parts) {
	case 0:
		return Nil()
	case 1:
		return parts[0]
	}
	return Doc{kind: kindConcat, parts: parts, hard: hard}
}

// Join places sep between consecutive docs.
func Join(sep Doc, docs []Doc) Doc {
	out := make([]Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return Concat(out...)
}
