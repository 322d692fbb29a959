package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes the tree one element per line, two spaces of indent per level:
//
//	Root@0..9
//	  List@0..9
//	    LParen@0..1 "("
//	    Symbol@1..4 "foo"
//
// Erroneous nodes are suffixed with " !".
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	t.Walk(t.RootElem(), func(e Element, depth int) bool {
		bw.WriteString(strings.Repeat("  ", depth))
		sp := t.Span(e)
		if e.IsToken() {
			fmt.Fprintf(bw, "%s@%s %q\n", t.Kind(e), sp.Range(), t.Tokens[e.Index].Text)
			return true
		}
		fmt.Fprintf(bw, "%s@%s", t.Kind(e), sp.Range())
		if t.Nodes[e.Index].Erroneous {
			bw.WriteString(" !")
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// String renders the dump into a string.
func (t *Tree) String() string {
	var b strings.Builder
	_ = t.Dump(&b)
	return b.String()
}
