package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lispfmt/internal/source"
	"lispfmt/internal/token"
)

type TriviaOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text"`
	Span source.Span `json:"span"`
}

type TokenOutput struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Leading  []TriviaOutput `json:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty"`
}

func triviaKinds(ts []token.Trivia) string {
	kinds := make([]string, 0, len(ts))
	for _, tv := range ts {
		kinds = append(kinds, tv.Kind.String())
	}
	return strings.Join(kinds, ", ")
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-14s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", triviaKinds(tok.Leading))
		}
		if len(tok.Trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", triviaKinds(tok.Trailing))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		if tok.Kind == token.End {
			break
		}
	}
	return nil
}

func triviaOutput(ts []token.Trivia) []TriviaOutput {
	if len(ts) == 0 {
		return nil // Убираем пустые массивы из JSON
	}
	out := make([]TriviaOutput, len(ts))
	for i, tv := range ts {
		out[i] = TriviaOutput{Kind: tv.Kind.String(), Text: tv.Text, Span: tv.Span}
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Leading:  triviaOutput(tok.Leading),
			Trailing: triviaOutput(tok.Trailing),
		})
		if tok.Kind == token.End {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
