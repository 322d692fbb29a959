package testkit

import (
	"fmt"
	"strings"

	"lispfmt/internal/source"
	"lispfmt/internal/syntax"
	"lispfmt/internal/token"
)

// CheckCoverage verifies that the token stream reproduces the file byte for byte:
// leading trivia, token text and trailing trivia concatenated in order, with
// spans that are contiguous and match their text.
func CheckCoverage(sf *source.File, tokens []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.End {
		return fmt.Errorf("token stream does not end with End")
	}
	var off uint32
	check := func(kind token.Kind, sp source.Span, text string) error {
		if sp.Start != off {
			return fmt.Errorf("%s at %s: gap or overlap, expected start %d", kind, sp.Range(), off)
		}
		if sp.End < sp.Start || sp.End > sf.Len() {
			return fmt.Errorf("%s at %s: span outside file", kind, sp.Range())
		}
		if sf.Slice(sp) != text {
			return fmt.Errorf("%s at %s: text %q does not match source %q", kind, sp.Range(), text, sf.Slice(sp))
		}
		off = sp.End
		return nil
	}
	for i, tok := range tokens {
		for _, tv := range tok.Leading {
			if err := check(tv.Kind, tv.Span, tv.Text); err != nil {
				return fmt.Errorf("token %d leading: %w", i, err)
			}
		}
		if err := check(tok.Kind, tok.Span, tok.Text); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
		for _, tv := range tok.Trailing {
			if tv.Kind == token.Newline {
				return fmt.Errorf("token %d: newline in trailing trivia", i)
			}
			if err := check(tv.Kind, tv.Span, tv.Text); err != nil {
				return fmt.Errorf("token %d trailing: %w", i, err)
			}
		}
	}
	if off != sf.Len() {
		return fmt.Errorf("tokens cover %d of %d bytes", off, sf.Len())
	}
	return nil
}

// Reconstruct concatenates all token and trivia text.
func Reconstruct(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		tok.WriteSource(&b)
	}
	return b.String()
}

// CheckTree verifies the structural invariants of a parsed tree: every token
// appears exactly once and in order, container shapes hold for nodes that are
// not marked erroneous, and node spans cover their children.
func CheckTree(tree *syntax.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Nodes[tree.Root]
	if root.Kind != token.Root {
		return fmt.Errorf("root node has kind %s", root.Kind)
	}
	if n := len(root.Children); n == 0 || tree.Kind(root.Children[n-1]) != token.End {
		return fmt.Errorf("root does not end with End")
	}

	next := uint32(0)
	var err error
	tree.Walk(tree.RootElem(), func(e syntax.Element, _ int) bool {
		if err != nil {
			return false
		}
		if e.IsToken() {
			if e.Index != next {
				err = fmt.Errorf("token %d visited, expected %d", e.Index, next)
				return false
			}
			if tree.Kind(e).IsTrivia() {
				err = fmt.Errorf("trivia kind %s in tree", tree.Kind(e))
				return false
			}
			next++
			return true
		}
		err = checkNode(tree, tree.Node(e))
		return err == nil
	})
	if err != nil {
		return err
	}
	if int(next) != len(tree.Tokens) {
		return fmt.Errorf("tree holds %d of %d tokens", next, len(tree.Tokens))
	}
	return nil
}

func checkNode(tree *syntax.Tree, n *syntax.Node) error {
	for _, ch := range n.Children {
		if n.Kind != token.Root && !n.Span.Contains(tree.Span(ch)) {
			return fmt.Errorf("%s@%s does not contain child %s@%s", n.Kind, n.Span.Range(), tree.Kind(ch), tree.Span(ch).Range())
		}
	}
	if n.Erroneous {
		return nil
	}
	kids := n.Children
	switch n.Kind {
	case token.List, token.Sequence, token.Table:
		open, closing := n.Kind.Delims()
		if len(kids) < 2 || !kids[0].IsToken() || !kids[len(kids)-1].IsToken() ||
			tree.Token(kids[0]).Text != open || tree.Token(kids[len(kids)-1]).Text != closing {
			return fmt.Errorf("%s@%s is missing its delimiters", n.Kind, n.Span.Range())
		}
		if n.Kind == token.Table {
			for _, ch := range kids[1 : len(kids)-1] {
				if tree.Kind(ch) != token.Pair {
					return fmt.Errorf("table child %s is not a Pair", tree.Kind(ch))
				}
			}
		}
	case token.Pair:
		if len(kids) != 2 {
			return fmt.Errorf("Pair@%s has %d children", n.Span.Range(), len(kids))
		}
	case token.Prefixed:
		if len(kids) != 2 || tree.Kind(kids[0]) != token.Prefix {
			return fmt.Errorf("Prefixed@%s is malformed", n.Span.Range())
		}
	}
	return nil
}
