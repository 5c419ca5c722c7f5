package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

// NoFileID marks a span that does not point into any file (I/O failures, manifest errors).
const NoFileID FileID = ^FileID(0)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC marks content that changed under Unicode NFC normalisation.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Location is the (file, line, column) triple attached to every token.
// Line and Col are 1-based; Col counts bytes from the line start.
type Location struct {
	File string `json:"file" msgpack:"file" yaml:"file"`
	Line uint32 `json:"line" msgpack:"line" yaml:"line"`
	Col  uint32 `json:"col" msgpack:"col" yaml:"col"`
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// IsValid reports whether the location points somewhere.
func (l Location) IsValid() bool {
	return l.Line > 0
}
