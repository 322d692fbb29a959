package format

import (
	"fmt"
	"strings"

	"lispfmt/internal/diag"
	"lispfmt/internal/doc"
	"lispfmt/internal/syntax"
	"lispfmt/internal/token"
)

const (
	listIndent     = 2
	sequenceIndent = 1
	tableIndent    = 1
)

type builder struct {
	tree     *syntax.Tree
	reporter diag.Reporter
}

// Document builds the layout document for a parsed tree. The tree must be free
// of syntax errors; a container without its delimiters is a programming error
// and panics. Layout warnings go to r, which may be nil.
func Document(tree *syntax.Tree, r diag.Reporter) doc.Doc {
	b := builder{tree: tree, reporter: r}
	return b.root(tree.Node(tree.RootElem()))
}

func (b *builder) root(n *syntax.Node) doc.Doc {
	kids := n.Children
	if len(kids) == 0 || b.tree.Kind(kids[len(kids)-1]) != token.End {
		panic("format: root does not end with End")
	}
	items := kids[:len(kids)-1]

	lines := make([]doc.Doc, 0, len(items))
	for i, e := range items {
		lead := scanLeading(b.leadingOf(e), i == 0)
		lines = append(lines, doc.Concat(
			leadingDoc(lead, true),
			b.expr(e),
			trailingDoc(b.trailingOf(e)),
		))
	}

	end := b.tree.Token(kids[len(kids)-1])
	b.strayIgnores(end.Leading)
	tail := b.closingComments(scanLeading(end.Leading, len(items) == 0), len(items) > 0)
	return doc.Concat(doc.Join(doc.Hardline(), lines), tail)
}

// closingComments renders comments that precede a closing token (a closing
// delimiter or End). Every comment goes on its own line; no blank line is left
// after the last one.
func (b *builder) closingComments(l leading, afterItems bool) doc.Doc {
	parts := make([]doc.Doc, 0, 3*len(l.comments))
	for i, c := range l.comments {
		if i > 0 || afterItems {
			parts = append(parts, doc.Hardline())
		}
		if c.blankBefore {
			parts = append(parts, doc.Hardline())
		}
		parts = append(parts, doc.Text(c.text))
	}
	return doc.Concat(parts...)
}

// expr renders e without the leading trivia of its first token and the
// trailing trivia of its last token; those belong to the enclosing layout.
func (b *builder) expr(e syntax.Element) doc.Doc {
	if b.ignored(e) {
		return doc.Text(b.verbatim(e))
	}
	if e.IsToken() {
		tok := b.tree.Token(e)
		if tok.Kind == token.HashDirective {
			return doc.Text(strings.TrimRight(tok.Text, " \t"))
		}
		return doc.Text(tok.Text)
	}

	n := b.tree.Node(e)
	switch n.Kind {
	case token.List, token.Sequence, token.Table:
		return b.container(n)
	case token.Pair:
		return b.pair(n)
	case token.Prefixed:
		if len(n.Children) != 2 {
			panic(fmt.Sprintf("format: Prefixed node with %d children", len(n.Children)))
		}
		return doc.Concat(b.expr(n.Children[0]), b.expr(n.Children[1]))
	default:
		panic(fmt.Sprintf("format: unexpected %s node inside an expression", n.Kind))
	}
}

func (b *builder) container(n *syntax.Node) doc.Doc {
	kids := n.Children
	openText, closeText := n.Kind.Delims()
	if len(kids) < 2 || !kids[0].IsToken() || !kids[len(kids)-1].IsToken() ||
		b.tree.Token(kids[0]).Text != openText || b.tree.Token(kids[len(kids)-1]).Text != closeText {
		panic(fmt.Sprintf("format: %s@%s is missing its delimiters", n.Kind, n.Span.Range()))
	}
	open, closer := b.tree.Token(kids[0]), b.tree.Token(kids[len(kids)-1])
	items := kids[1 : len(kids)-1]

	indent, grouped, hardSep := listIndent, false, false
	switch n.Kind {
	case token.Sequence:
		indent = sequenceIndent
		grouped = b.homogeneous(items)
		hardSep = !grouped
	case token.Table:
		indent, grouped = tableIndent, true
	}

	body := make([]doc.Doc, 0, 2*len(items)+2)
	lastTrailingComment := false
	for i, e := range items {
		lead := scanLeading(b.leadingOf(e), i == 0)
		switch {
		case i == 0:
			if hasComment(open.Trailing) || len(lead.comments) > 0 || (n.Kind == token.List && lead.newline) {
				body = append(body, doc.Hardline())
			}
		case grouped:
			body = append(body, doc.Line())
		case hardSep || lead.newline:
			body = append(body, doc.Hardline())
		default:
			body = append(body, doc.Text(" "))
		}
		trailing := b.trailingOf(e)
		body = append(body, leadingDoc(lead, true), b.expr(e), trailingDoc(trailing))
		lastTrailingComment = hasComment(trailing)
	}

	b.strayIgnores(closer.Leading)
	closeLead := scanLeading(closer.Leading, len(items) == 0)
	body = append(body, b.closingComments(closeLead, true))

	breakBeforeClose := lastTrailingComment || len(closeLead.comments) > 0 ||
		(len(items) == 0 && hasComment(open.Trailing))

	parts := []doc.Doc{
		doc.Text(open.Text),
		trailingDoc(open.Trailing),
		doc.Nest(indent, doc.Concat(body...)),
	}
	if breakBeforeClose {
		parts = append(parts, doc.Hardline())
	}
	parts = append(parts, doc.Text(closer.Text))

	out := doc.Align(doc.Concat(parts...))
	if grouped {
		return doc.Group(out)
	}
	return out
}

// pair renders key and value separated by one space. When a comment sits
// between them the value moves to the next line, aligned with the key.
func (b *builder) pair(n *syntax.Node) doc.Doc {
	if len(n.Children) != 2 {
		panic(fmt.Sprintf("format: Pair with %d children", len(n.Children)))
	}
	key, value := n.Children[0], n.Children[1]
	keyTrailing := b.trailingOf(key)
	valueLead := scanLeading(b.leadingOf(value), false)

	sep := doc.Text(" ")
	if hasComment(keyTrailing) || len(valueLead.comments) > 0 {
		sep = doc.Hardline()
	}
	return doc.Align(doc.Concat(
		b.expr(key),
		trailingDoc(keyTrailing),
		sep,
		leadingDoc(valueLead, false),
		b.expr(value),
	))
}

// homogeneous reports whether all items share one syntax kind.
func (b *builder) homogeneous(items []syntax.Element) bool {
	for i := 1; i < len(items); i++ {
		if b.tree.Kind(items[i]) != b.tree.Kind(items[0]) {
			return false
		}
	}
	return true
}

func (b *builder) leadingOf(e syntax.Element) []token.Trivia {
	first, ok := b.tree.FirstToken(e)
	if !ok {
		return nil
	}
	return b.tree.Tokens[first].Leading
}

func (b *builder) trailingOf(e syntax.Element) []token.Trivia {
	last, ok := b.tree.LastToken(e)
	if !ok {
		return nil
	}
	return b.tree.Tokens[last].Trailing
}
