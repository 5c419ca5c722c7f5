package parser

import (
	"slices"
	"testing"

	"ember/internal/lexer"
	"ember/internal/token"
)

func newTestParser(src string) *Parser {
	return New(lexer.FromString("test.em", src))
}

// expectParseError проверяет вид ошибки и ожидаемое множество (если задано)
func expectParseError(t *testing.T, err *Error, kind ErrorKind, expected ...token.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if err.Kind != kind {
		t.Fatalf("expected %v error, got %v (%v)", kind, err.Kind, err)
	}
	if expected != nil && !slices.Equal(err.Expected, expected) {
		t.Fatalf("expected set: got [%s], want [%s]", ExpectedString(err.Expected), ExpectedString(expected))
	}
	if err.Error() == "" {
		t.Fatal("empty error message")
	}
}
