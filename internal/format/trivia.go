package format

import (
	"strings"
	"unicode"

	"lispfmt/internal/doc"
	"lispfmt/internal/token"
)

// IgnoreDirective is the comment text that switches a subtree to verbatim output.
const IgnoreDirective = "lispfmt-ignore"

type comment struct {
	text        string
	blankBefore bool
}

// leading is the digest of one leading trivia run.
type leading struct {
	comments []comment
	// blankAfter: a blank line separates the last comment (or, without
	// comments, the previous token) from the token itself.
	blankAfter bool
	newline    bool
}

// scanLeading condenses a leading trivia run. Two or more line breaks in a row
// mean one blank line; fewer mean none. With atStart set (start of file, right
// after an opening delimiter) blank lines before the first comment are dropped.
func scanLeading(ts []token.Trivia, atStart bool) leading {
	var out leading
	breaks := 0
	ignoreBreaks := atStart
	for i, tv := range ts {
		switch tv.Kind {
		case token.Newline:
			out.newline = true
			// CR LF is one line break
			if tv.Text == "\r" && i+1 < len(ts) && ts[i+1].Text == "\n" {
				continue
			}
			if !ignoreBreaks {
				breaks++
			}
		case token.Comment:
			out.comments = append(out.comments, comment{
				text:        trimComment(tv.Text),
				blankBefore: breaks >= 2,
			})
			breaks = 0
			ignoreBreaks = false
		}
	}
	out.blankAfter = breaks >= 2
	return out
}

// firstComment returns the first comment of a trivia run.
func firstComment(ts []token.Trivia) (string, bool) {
	for _, tv := range ts {
		if tv.Kind == token.Comment {
			return tv.Text, true
		}
	}
	return "", false
}

func hasComment(ts []token.Trivia) bool {
	_, ok := firstComment(ts)
	return ok
}

func trimComment(text string) string {
	return strings.TrimRightFunc(text, unicode.IsSpace)
}

// isIgnoreComment: leading ';' characters and surrounding space are stripped
// before comparing with the directive.
func isIgnoreComment(text string) bool {
	return strings.TrimSpace(strings.TrimLeft(text, ";")) == IgnoreDirective
}

func hasIgnore(ts []token.Trivia) bool {
	for _, tv := range ts {
		if tv.Kind == token.Comment && isIgnoreComment(tv.Text) {
			return true
		}
	}
	return false
}

// leadingDoc renders the comments of a leading run, each on its own line,
// followed by a blank line when the source had one before the token.
func leadingDoc(l leading, blanks bool) doc.Doc {
	parts := make([]doc.Doc, 0, 3*len(l.comments)+1)
	for _, c := range l.comments {
		if blanks && c.blankBefore {
			parts = append(parts, doc.Hardline())
		}
		parts = append(parts, doc.Text(c.text), doc.Hardline())
	}
	if blanks && l.blankAfter {
		parts = append(parts, doc.Hardline())
	}
	return doc.Concat(parts...)
}

// trailingDoc renders same-line comments after a token. The BreakParent keeps
// any enclosing group from pulling following content onto the comment's line.
func trailingDoc(ts []token.Trivia) doc.Doc {
	parts := make([]doc.Doc, 0, 3)
	for _, tv := range ts {
		if tv.Kind == token.Comment {
			parts = append(parts, doc.Text(" "), doc.Text(trimComment(tv.Text)), doc.BreakParent())
		}
	}
	return doc.Concat(parts...)
}
