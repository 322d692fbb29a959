package driver

import (
	"lispfmt/internal/diag"
	"lispfmt/internal/doc"
	"lispfmt/internal/format"
	"lispfmt/internal/parser"
	"lispfmt/internal/source"
	"lispfmt/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Bag     *diag.Bag
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fileID, maxDiagnostics), nil
}

// ParseSource is Parse for in-memory content such as stdin.
func ParseSource(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(fs, fs.AddVirtual(name, content), maxDiagnostics)
}

func parseFile(fs *source.FileSet, id source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnosticsOrDefault(maxDiagnostics))
	tree := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: uint(bag.Cap()),
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}
}

// Document returns the layout document of a tree without syntax errors, or
// false when the tree cannot be laid out.
func (r *ParseResult) Document() (doc.Doc, bool) {
	if r.Bag.HasErrors() {
		return doc.Nil(), false
	}
	return format.Document(r.Tree, nil), true
}
