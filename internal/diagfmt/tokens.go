package diagfmt

import (
	"fmt"
	"io"

	"ember/internal/source"
	"ember/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Class string      `json:"class"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
}

// tokenClass: грубая категория токена для внешних инструментов (подсветка)
func tokenClass(k token.Kind) string {
	switch {
	case k.IsEOF():
		return "eof"
	case k == token.Invalid:
		return "invalid"
	case k == token.Ident:
		return "ident"
	case k.IsKeyword():
		return "keyword"
	case k.IsLiteral():
		return "literal"
	case k.IsAssignOp():
		return "assign"
	case k.IsPunctOrOp():
		return "punct"
	default:
		return "other"
	}
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}

		if _, ok := fileOf(fs, tok.Span); ok {
			startPos, endPos := fs.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		} else {
			fmt.Fprintf(w, " at %d:%d", tok.Loc.Line, tok.Loc.Col)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens up to and including EOF into their
// serializable form.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Class: tokenClass(tok.Kind),
			Text:  tok.Text,
			Span:  tok.Span,
			Line:  tok.Loc.Line,
			Col:   tok.Loc.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}
