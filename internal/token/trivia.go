package token

import "lispfmt/internal/source"

// Trivia is one piece of non-semantic source text: a run of spaces,
// a single newline character, or a line comment.
type Trivia struct {
	Kind Kind // Space, Newline or Comment
	Span source.Span
	Text string
}
