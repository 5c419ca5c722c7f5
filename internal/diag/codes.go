package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexEmptyChar          Code = 1004
	LexBadEscape          Code = 1005

	// Парсерные
	SynUnexpectedToken    Code = 2001
	SynUnexpectedEOF      Code = 2002
	SynBadNumber          Code = 2003
	SynUnexpectedTopLevel Code = 2004

	// Файлы
	IOLoadFileError Code = 4001

	// Проект
	ProjManifestInvalid Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexUnterminatedChar:   "Unterminated char literal",
	LexEmptyChar:          "Empty char literal",
	LexBadEscape:          "Unsupported escape sequence",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedEOF:      "Unexpected end of input",
	SynBadNumber:          "Number out of range",
	SynUnexpectedTopLevel: "Unexpected top level",
	IOLoadFileError:       "I/O load file error",
	ProjManifestInvalid:   "Invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
