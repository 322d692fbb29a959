// Package syntax holds the immutable lossless tree produced by the parser.
//
// The tree is an arena: tokens live in Tree.Tokens in source order, container
// nodes in Tree.Nodes, and a node refers to its children through Element
// values (a tag plus an index). Consumers switch on Element.Tag or on the
// syntax kind; there is no per-node heap object and no downcasting.
//
// Shape invariants established by the parser:
//   - List, Sequence and Table start with their opening delimiter token and end
//     with the closing one, unless the node is marked Erroneous because the
//     closer was missing.
//   - Pair has exactly two expression children; Prefixed has a Prefix token and
//     one expression. Erroneous nodes may be shorter.
//   - Root has no delimiters and its last child is the End token.
//   - Every token appears exactly once, in order.
package syntax
