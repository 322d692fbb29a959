package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were rewritten to LF on load.
	FileNormalizedCRLF
	// FileDecodedUTF16 indicates the file was UTF-16 on disk and was decoded to UTF-8.
	FileDecodedUTF16
)

// File captures metadata and content for a single source file.
// Content is held as a string so token and trivia text can be sliced from it
// without copying.
type File struct {
	ID      FileID
	Path    string
	Content string
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
