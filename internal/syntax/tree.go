package syntax

import (
	"lispfmt/internal/source"
	"lispfmt/internal/token"
)

// ElemTag discriminates the two cases of Element.
type ElemTag uint8

const (
	ElemToken ElemTag = iota
	ElemNode
)

// Element is either a token (index into Tree.Tokens) or a node (index into Tree.Nodes).
type Element struct {
	Tag   ElemTag
	Index uint32
}

func TokenElem(i uint32) Element { return Element{Tag: ElemToken, Index: i} }
func NodeElem(i uint32) Element  { return Element{Tag: ElemNode, Index: i} }

func (e Element) IsToken() bool { return e.Tag == ElemToken }
func (e Element) IsNode() bool  { return e.Tag == ElemNode }

// Node is a container.
type Node struct {
	Kind     token.Kind
	Span     source.Span
	Children []Element
	// Erroneous is set when recovery closed or shortened the node.
	Erroneous bool
}

type Tree struct {
	File   *source.File
	Tokens []token.Token
	Nodes  []Node
	Root   uint32
}

// RootElem returns the element for the Root node.
func (t *Tree) RootElem() Element { return NodeElem(t.Root) }

func (t *Tree) Kind(e Element) token.Kind {
	if e.IsToken() {
		return t.Tokens[e.Index].Kind
	}
	return t.Nodes[e.Index].Kind
}

func (t *Tree) Span(e Element) source.Span {
	if e.IsToken() {
		return t.Tokens[e.Index].Span
	}
	return t.Nodes[e.Index].Span
}

// Token returns the token behind e; e must be a token element.
func (t *Tree) Token(e Element) *token.Token {
	if !e.IsToken() {
		panic("syntax: Token called on a node element")
	}
	return &t.Tokens[e.Index]
}

// Node returns the node behind e; e must be a node element.
func (t *Tree) Node(e Element) *Node {
	if !e.IsNode() {
		panic("syntax: Node called on a token element")
	}
	return &t.Nodes[e.Index]
}

// Children returns the children of a node element, nil for tokens.
func (t *Tree) Children(e Element) []Element {
	if e.IsToken() {
		return nil
	}
	return t.Nodes[e.Index].Children
}

// FirstToken returns the index of the first token under e.
func (t *Tree) FirstToken(e Element) (uint32, bool) {
	for e.IsNode() {
		ch := t.Nodes[e.Index].Children
		if len(ch) == 0 {
			return 0, false
		}
		e = ch[0]
	}
	return e.Index, true
}

// LastToken returns the index of the last token under e.
func (t *Tree) LastToken(e Element) (uint32, bool) {
	for e.IsNode() {
		ch := t.Nodes[e.Index].Children
		if len(ch) == 0 {
			return 0, false
		}
		e = ch[len(ch)-1]
	}
	return e.Index, true
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of the visited element.
func (t *Tree) Walk(e Element, fn func(Element, int) bool) {
	t.walk(e, 0, fn)
}

func (t *Tree) walk(e Element, depth int, fn func(Element, int) bool) {
	if !fn(e, depth) || e.IsToken() {
		return
	}
	for _, ch := range t.Nodes[e.Index].Children {
		t.walk(ch, depth+1, fn)
	}
}
