package fuzz

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"(foo 1 2)",
	"(foo\n  1\n  2)",
	"[1\n2\n3]",
	"[1 :a \"b\"]",
	"{:a 1 :b [2 3]}",
	"`(when ,cond ,@body)",
	"#!/usr/bin/env fennel\n(print 1)",
	"(a) ; trailing\n\n\n; leading\n(b)",
	"; lispfmt-ignore\n(foo   1\n      2)",
	"(foo (bar)",
	"(a))",
	"{:a}",
	"\"unterminated",
	"(a \\ b \x00 c \xff)",
	"(a\r\nb)\r\n",
	"#(+ $1 1) ?x ^y ~= ~x",
	":kw :1 1.5e3 0x1F -7 true false",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".fnl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, n int) []byte {
	if len(src) <= n {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:n]...)
}
