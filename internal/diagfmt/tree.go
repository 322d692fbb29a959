package diagfmt

import (
	"encoding/json"
	"io"

	"lispfmt/internal/syntax"
)

// NodeOutput is one element of the tree in JSON form. Tokens carry Text,
// nodes carry Children.
type NodeOutput struct {
	Kind      string       `json:"kind"`
	Start     uint32       `json:"start"`
	End       uint32       `json:"end"`
	Text      string       `json:"text,omitempty"`
	Erroneous bool         `json:"erroneous,omitempty"`
	Children  []NodeOutput `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево в формате Kind@start..end.
func FormatTreePretty(w io.Writer, tree *syntax.Tree) error {
	return tree.Dump(w)
}

// BuildTreeOutput converts the subtree under e.
func BuildTreeOutput(tree *syntax.Tree, e syntax.Element) NodeOutput {
	sp := tree.Span(e)
	out := NodeOutput{Kind: tree.Kind(e).String(), Start: sp.Start, End: sp.End}
	if e.IsToken() {
		out.Text = tree.Token(e).Text
		return out
	}
	n := tree.Node(e)
	out.Erroneous = n.Erroneous
	out.Children = make([]NodeOutput, 0, len(n.Children))
	for _, ch := range n.Children {
		out.Children = append(out.Children, BuildTreeOutput(tree, ch))
	}
	return out
}

// FormatTreeJSON выводит дерево в JSON формате
func FormatTreeJSON(w io.Writer, tree *syntax.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(tree, tree.RootElem()))
}
