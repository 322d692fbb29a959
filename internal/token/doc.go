// Package token defines syntax kinds, trivia pieces and token leaves for lispfmt.
// Invariants:
//   - Token.Text and Trivia.Text are slices of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Trivia kinds (Space, Newline, Comment) only ever appear inside
//     Token.Leading / Token.Trailing, never as tree nodes.
//   - Trailing trivia holds Space and Comment only; a newline always starts the
//     next token's Leading list.
//   - Container kinds (Root, List, ...) are used by the syntax tree only.
package token
