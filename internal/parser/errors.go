package parser

import (
	"fmt"
	"strings"

	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

// ErrorKind classifies syntax failures.
type ErrorKind uint8

const (
	// UnexpectedToken: Found is not in Expected.
	UnexpectedToken ErrorKind = iota + 1
	// UnexpectedEOF: input ended while one of Expected was required.
	UnexpectedEOF
	// InvalidNumber: a Number token does not fit in uint64.
	InvalidNumber
	// LexFailure: the lexer could not produce the next token; Lex holds the cause.
	LexFailure
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidNumber:
		return "invalid number"
	case LexFailure:
		return "lexical error"
	default:
		return "syntax error"
	}
}

// Error is a syntax error at Loc.
type Error struct {
	Kind     ErrorKind
	Expected []token.Kind
	Found    token.Token
	Span     source.Span
	Loc      source.Location
	// Lex is set for LexFailure.
	Lex *lexer.Error
}

func (e *Error) Error() string {
	if e.Kind == LexFailure && e.Lex != nil {
		return e.Lex.Error()
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Message())
}

// Message is the error text without the location prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case LexFailure:
		if e.Lex != nil {
			return e.Lex.Message()
		}
		return e.Kind.String()
	case InvalidNumber:
		return fmt.Sprintf("number %s does not fit in 64 bits", e.Found.Text)
	case UnexpectedEOF:
		return fmt.Sprintf("%s, expected %s", e.Kind, ExpectedString(e.Expected))
	default:
		return fmt.Sprintf("%s %s, expected %s", e.Kind, e.Found.Describe(), ExpectedString(e.Expected))
	}
}

// Unwrap exposes the lexical cause, if any.
func (e *Error) Unwrap() error {
	if e.Lex == nil {
		return nil
	}
	return e.Lex
}

// ExpectedString renders an expected set: "Semicolon", "Comma or RParen", "A, B or C".
func ExpectedString(kinds []token.Kind) string {
	switch len(kinds) {
	case 0:
		return "nothing"
	case 1:
		return kinds[0].String()
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
