package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"lispfmt/internal/source"
)

// FormatShortDiagnostics renders one compiler-style line per diagnostic,
// "path:line:col: severity CODE message", in the order given. With
// includeNotes each note follows its diagnostic as a "note" line. Spans that
// do not resolve against fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if loc, ok := shortLocation(fs, d.Primary); ok {
			lines = append(lines, fmt.Sprintf("%s: %s %s %s", loc, d.Severity.label(), d.Code.ID(), oneLine(d.Message)))
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if loc, ok := shortLocation(fs, note.Span); ok {
				lines = append(lines, fmt.Sprintf("%s: note %s", loc, oneLine(note.Msg)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// shortLocation: path:line:col, path относителен базовой директории FileSet;
// виртуальные файлы (stdin) печатаются как есть.
func shortLocation(fs *source.FileSet, span source.Span) (string, bool) {
	if int(span.File) >= fs.Len() {
		return "", false
	}
	file := fs.Get(span.File)
	if span.End > file.Len() {
		return "", false
	}
	start, _ := fs.Resolve(span)
	path := file.Path
	if file.Flags&source.FileVirtual == 0 {
		path = filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
		for strings.HasPrefix(path, "./") {
			path = strings.TrimPrefix(path, "./")
		}
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), true
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
