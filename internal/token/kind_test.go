package token_test

import (
	"strings"
	"testing"

	"ember/internal/token"
)

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.Number, token.StringLit, token.CharLit} {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.KwIf, token.KwFun, token.At} {
		if !k.IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
		if k.IsPunctOrOp() {
			t.Fatalf("%v must NOT be punctuation", k)
		}
	}
	for _, k := range []token.Kind{token.Assign, token.PlusAssign, token.CaretAssign} {
		if !k.IsAssignOp() {
			t.Fatalf("%v should be an assignment operator", k)
		}
	}
	if token.EqEq.IsAssignOp() || token.Ident.IsKeyword() || token.EOF.IsPunctOrOp() {
		t.Fatal("classification leaked across groups")
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := token.Invalid; k <= token.CaretAssign; k++ {
		s := k.String()
		if s == "" || strings.HasPrefix(s, "Kind(") {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestTokenDescribe(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Text: "main"}
	if got := tok.Describe(); got != `Ident "main"` {
		t.Fatalf("Describe = %q", got)
	}
	eof := token.Token{Kind: token.EOF}
	if got := eof.Describe(); got != "EOF" {
		t.Fatalf("Describe = %q", got)
	}
}
