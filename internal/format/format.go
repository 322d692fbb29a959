package format

import (
	"errors"
	"math"

	"lispfmt/internal/diag"
	"lispfmt/internal/doc"
	"lispfmt/internal/lexer"
	"lispfmt/internal/observ"
	"lispfmt/internal/parser"
	"lispfmt/internal/source"
)

// DefaultWidth is the target line width when none is configured.
const DefaultWidth = 100

// ErrSyntax is returned when the input has lexical or syntax errors; no
// output is produced in that case.
var ErrSyntax = errors.New("format: syntax errors present")

// Options configures formatting.
type Options struct {
	// Width is the target line width; zero means DefaultWidth.
	Width int
	// MaxErrors bounds the number of reported diagnostics; zero means unlimited.
	MaxErrors uint
	// Timer, when set, records lex/parse/layout/render phases.
	Timer *observ.Timer
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

// FormatFile formats one source file. Diagnostics go to bag (which may be
// nil); if any of them is an error the result is ErrSyntax. Layout warnings
// do not stop formatting.
func FormatFile(sf *source.File, bag *diag.Bag, opts Options) (string, error) {
	local := diag.NewBag(math.MaxUint16)
	reporter := diag.BagReporter{Bag: local}
	if bag != nil {
		defer bag.Merge(local)
	}

	begin := func(name string) int {
		if opts.Timer == nil {
			return -1
		}
		return opts.Timer.Begin(name)
	}
	end := func(idx int) {
		if opts.Timer != nil {
			opts.Timer.End(idx, sf.Path)
		}
	}

	idx := begin("lex")
	tokens := lexer.Tokenize(sf, lexer.Options{Reporter: reporter})
	end(idx)

	idx = begin("parse")
	tree := parser.Parse(sf, tokens, parser.Options{Reporter: reporter, MaxErrors: opts.MaxErrors})
	end(idx)

	if local.HasErrors() {
		return "", ErrSyntax
	}

	idx = begin("layout")
	d := Document(tree, reporter)
	end(idx)

	idx = begin("render")
	out := doc.Render(d, opts.width())
	end(idx)

	if out != "" {
		out += "\n"
	}
	return out, nil
}

// Source formats src given as a string. On syntax errors the output is empty
// and the diagnostics explain why; otherwise they hold layout warnings only.
func Source(src string, width int) (string, []diag.Diagnostic) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("<stdin>", []byte(src)))
	bag := diag.NewBag(math.MaxUint16)
	out, err := FormatFile(sf, bag, Options{Width: width})
	if err != nil {
		return "", bag.Items()
	}
	return out, bag.Items()
}
