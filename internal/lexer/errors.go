package lexer

import (
	"fmt"

	"ember/internal/source"
)

// ErrorKind classifies lexical failures.
type ErrorKind uint8

const (
	// UnterminatedString: input or line ended before the closing '"'.
	UnterminatedString ErrorKind = iota + 1
	// UnterminatedChar: the char literal is not closed by a single '\''.
	UnterminatedChar
	// EmptyCharLiteral: ''.
	EmptyCharLiteral
	// UnsupportedEscape: a backslash followed by a byte outside the escape set.
	UnsupportedEscape
	// UnrecognizedByte: a byte that starts no token.
	UnrecognizedByte
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedChar:
		return "unterminated char literal"
	case EmptyCharLiteral:
		return "empty char literal"
	case UnsupportedEscape:
		return "unsupported escape sequence"
	case UnrecognizedByte:
		return "unrecognized character"
	default:
		return "lexical error"
	}
}

// Error is a lexical error with the offending location.
// Byte is set for UnsupportedEscape and UnrecognizedByte.
type Error struct {
	Kind ErrorKind
	Byte byte
	Span source.Span
	Loc  source.Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message())
}

// Message is the error text without the location prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case UnsupportedEscape:
		return fmt.Sprintf("%s '\\%s'", e.Kind, printableByte(e.Byte))
	case UnrecognizedByte:
		return fmt.Sprintf("%s '%s'", e.Kind, printableByte(e.Byte))
	default:
		return e.Kind.String()
	}
}

func printableByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}
