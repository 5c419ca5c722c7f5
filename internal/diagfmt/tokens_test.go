package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

func lexAll(t *testing.T, fs *source.FileSet, src string) []token.Token {
	t.Helper()
	id := fs.AddVirtual("main.em", []byte(src))
	lx := lexer.New(fs.Get(id))
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("lex: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lexAll(t, fs, "@x;"), fs); err != nil {
		t.Fatal(err)
	}
	want := "  1: At              \"@\" at 1:1-1:2\n" +
		"  2: Ident           \"x\" at 1:2-1:3\n" +
		"  3: Semicolon       \";\" at 1:3-1:4\n" +
		"  4: EOF             at 1:4-1:4\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestBuildTokensOutputJSON(t *testing.T) {
	fs := source.NewFileSet()
	data, err := json.Marshal(BuildTokensOutput(lexAll(t, fs, "fun f")))
	if err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 3 || out[0].Kind != "KwFun" || out[1].Text != "f" || out[1].Col != 5 || out[2].Kind != "EOF" {
		t.Fatalf("unexpected tokens: %+v", out)
	}
}

func TestTokenClasses(t *testing.T) {
	fs := source.NewFileSet()
	out := BuildTokensOutput(lexAll(t, fs, "@x u8 += 'c' ;"))
	want := []string{"keyword", "ident", "ident", "assign", "literal", "punct", "eof"}
	if len(out) != len(want) {
		t.Fatalf("got %d tokens: %+v", len(out), out)
	}
	for i, w := range want {
		if out[i].Class != w {
			t.Errorf("token %d (%s): class %q, want %q", i, out[i].Kind, out[i].Class, w)
		}
	}
}
