package format

import (
	"strings"

	"lispfmt/internal/diag"
	"lispfmt/internal/syntax"
	"lispfmt/internal/token"
)

// ignored reports whether e carries the ignore directive: in the leading
// trivia of its first token, in the trailing trivia of its last token, or as
// the first comment inside a delimited container. That comment is looked for
// after the opening delimiter, before the first item and after the first
// item on its line; with no items, before the closing delimiter.
func (b *builder) ignored(e syntax.Element) bool {
	if hasIgnore(b.leadingOf(e)) || hasIgnore(b.trailingOf(e)) {
		return true
	}
	if e.IsToken() {
		return false
	}
	n := b.tree.Node(e)
	switch n.Kind {
	case token.List, token.Sequence, token.Table:
	default:
		return false
	}
	if len(n.Children) < 2 {
		return false
	}
	open := b.tree.Token(n.Children[0])
	runs := [][]token.Trivia{open.Trailing}
	if first := n.Children[1]; first.IsToken() && b.tree.Token(first).Kind.IsClose() {
		runs = append(runs, b.tree.Token(first).Leading)
	} else {
		runs = append(runs, b.leadingOf(first), b.trailingOf(first))
	}
	for _, ts := range runs {
		if text, ok := firstComment(ts); ok {
			return isIgnoreComment(text)
		}
	}
	return false
}

// strayIgnores warns about ignore directives in front of a closing token:
// no expression follows them, so they change nothing.
func (b *builder) strayIgnores(ts []token.Trivia) {
	if b.reporter == nil {
		return
	}
	for _, tv := range ts {
		if tv.Kind == token.Comment && isIgnoreComment(tv.Text) {
			diag.ReportWarning(b.reporter, diag.FmtStrayIgnore, tv.Span,
				IgnoreDirective+" is not followed by an expression").Emit()
		}
	}
}

// verbatim returns the source of e from its first to its last token, internal
// trivia included. Spaces that end a line are dropped; token text is never
// altered.
func (b *builder) verbatim(e syntax.Element) string {
	first, ok1 := b.tree.FirstToken(e)
	last, ok2 := b.tree.LastToken(e)
	if !ok1 || !ok2 {
		return ""
	}

	var pieces []token.Trivia
	var out strings.Builder
	flush := func() {
		for i, tv := range pieces {
			switch {
			case tv.Kind == token.Space && i+1 < len(pieces) && pieces[i+1].Kind == token.Newline:
			case tv.Kind == token.Comment:
				out.WriteString(trimComment(tv.Text))
			default:
				out.WriteString(tv.Text)
			}
		}
		pieces = pieces[:0]
	}

	for i := first; i <= last; i++ {
		tok := b.tree.Tokens[i]
		if i != first {
			pieces = append(pieces, tok.Leading...)
		}
		flush()
		out.WriteString(tok.Text)
		if i != last {
			pieces = append(pieces, tok.Trailing...)
		}
	}
	return out.String()
}
