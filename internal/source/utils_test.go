package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeUTF16(t *testing.T) {
	// "(a)" in UTF-16LE with BOM
	raw := []byte{0xFF, 0xFE, '(', 0, 'a', 0, ')', 0}
	got, flags, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(got) != "(a)" {
		t.Errorf("decoded = %q, want %q", got, "(a)")
	}
	if flags&FileDecodedUTF16 == 0 || flags&FileHadBOM == 0 {
		t.Errorf("flags = %b", flags)
	}
}

func TestNormalizeKeepsPlainBytes(t *testing.T) {
	raw := []byte("(a \xff)\r")
	got, flags, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("content changed: %q", got)
	}
	if flags != 0 {
		t.Errorf("flags = %b, want 0", flags)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	target := filepath.Join(otherDir, "file.fnl")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.fnl")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.fnl"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}
