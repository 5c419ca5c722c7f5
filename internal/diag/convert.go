package diag

import (
	"errors"
	"slices"

	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/token"
)

// FromError converts a lexer or parser error into a diagnostic.
// ok is false for any other error.
func FromError(err error) (Diagnostic, bool) {
	if pe, ok := parser.Err(err); ok {
		return FromParseError(pe), true
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return FromLexError(le), true
	}
	return Diagnostic{}, false
}

func FromLexError(e *lexer.Error) Diagnostic {
	d := NewError(lexCode(e.Kind), e.Span, e.Message())
	d.Loc = e.Loc
	return d
}

func FromParseError(e *parser.Error) Diagnostic {
	if e.Kind == parser.LexFailure && e.Lex != nil {
		return FromLexError(e.Lex)
	}
	d := NewError(parseCode(e), e.Span, e.Message())
	d.Loc = e.Loc
	if d.Code == SynUnexpectedTopLevel {
		d = d.WithNote(e.Span, "top-level items start with '@' (variable) or 'fun' (function)")
	}
	return d
}

func lexCode(k lexer.ErrorKind) Code {
	switch k {
	case lexer.UnterminatedString:
		return LexUnterminatedString
	case lexer.UnterminatedChar:
		return LexUnterminatedChar
	case lexer.EmptyCharLiteral:
		return LexEmptyChar
	case lexer.UnsupportedEscape:
		return LexBadEscape
	case lexer.UnrecognizedByte:
		return LexUnknownChar
	default:
		return UnknownCode
	}
}

var topLevelStarters = []token.Kind{token.At, token.KwFun}

func parseCode(e *parser.Error) Code {
	switch e.Kind {
	case parser.UnexpectedEOF:
		return SynUnexpectedEOF
	case parser.InvalidNumber:
		return SynBadNumber
	case parser.UnexpectedToken:
		if slices.Equal(e.Expected, topLevelStarters) {
			return SynUnexpectedTopLevel
		}
		return SynUnexpectedToken
	default:
		return UnknownCode
	}
}
