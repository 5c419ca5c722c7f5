package parser

import (
	"errors"
	"testing"

	"ember/internal/ast"
	"ember/internal/lexer"
	"ember/internal/token"
)

const sampleProgram = `#!/usr/bin/env ember
@hello = "facts";
// entry point
fun main(a b, c d) u32 {}
@limit u32 :: 3;
`

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram(lexer.FromString("test.em", sampleProgram))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Directive != "#!/usr/bin/env ember" {
		t.Errorf("directive: %q", prog.Directive)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 items, got %d", len(prog.Body))
	}

	hello, ok := prog.Body[0].(*ast.VariableDecl)
	if !ok || hello.Ident != "hello" || hello.InitText() != "facts" || hello.IsConst {
		t.Fatalf("item 0: %v", prog.Body[0])
	}
	if hello.Loc.Line != 2 || hello.Loc.Col != 1 {
		t.Errorf("item 0 location: %v", hello.Loc)
	}

	fn, ok := prog.Body[1].(*ast.FunctionDecl)
	if !ok || fn.Ident != "main" || len(fn.Args) != 2 {
		t.Fatalf("item 1: %v", prog.Body[1])
	}
	if fn.Loc.Line != 4 || fn.Loc.Col != 1 {
		t.Errorf("item 1 location: %v", fn.Loc)
	}

	limit, ok := prog.Body[2].(*ast.VariableDecl)
	if !ok || !limit.IsStatic || limit.TypeName() != "u32" {
		t.Fatalf("item 2: %v", prog.Body[2])
	}

	want := "#!/usr/bin/env ember\n@hello = \"facts\";\nfun main(a b, c d) u32 {}\n@limit u32 :: 3;\n"
	if prog.String() != want {
		t.Errorf("round trip:\n got %q\nwant %q", prog.String(), want)
	}
}

func TestParseProgram_Empty(t *testing.T) {
	for _, src := range []string{"", "   \n", "// nothing here\n"} {
		prog, err := ParseProgram(lexer.FromString("test.em", src))
		if err != nil || len(prog.Body) != 0 {
			t.Fatalf("%q: got %v items, err %v", src, prog, err)
		}
	}
}

func TestParseProgram_FuncAlias(t *testing.T) {
	prog, err := ParseProgram(lexer.FromString("test.em", "func f() u8 {}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Functions()) != 1 {
		t.Fatal("func must introduce a function")
	}
}

func TestParseProgram_UnexpectedTopLevel(t *testing.T) {
	prog, err := ParseProgram(lexer.FromString("test.em", "@a;\nhello;"))
	if prog != nil {
		t.Fatal("failed parse must not return a program")
	}
	pe, ok := Err(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	expectParseError(t, pe, UnexpectedToken, token.At, token.KwFun)
	if pe.Found.Text != "hello" || pe.Loc.Line != 2 || pe.Loc.Col != 1 {
		t.Errorf("found %v at %v", pe.Found.Describe(), pe.Loc)
	}
}

func TestParseProgram_RejectsFunctionBody(t *testing.T) {
	src := "@hello = \"facts\";\nfun main(a b,c d) u32 {\nname = 5 + 1 * 3 / a + 2;}"
	_, err := ParseProgram(lexer.FromString("test.em", src))
	pe, ok := Err(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	expectParseError(t, pe, UnexpectedToken, token.RBrace)
	if pe.Found.Kind != token.Ident || pe.Loc.Line != 3 || pe.Loc.Col != 1 {
		t.Errorf("found %v at %v", pe.Found.Describe(), pe.Loc)
	}
}

func TestParseProgram_LexFailure(t *testing.T) {
	_, err := ParseProgram(lexer.FromString("test.em", `@x = "a\qb";`))
	pe, ok := Err(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	expectParseError(t, pe, LexFailure)

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Kind != lexer.UnsupportedEscape || lexErr.Byte != 'q' {
		t.Fatalf("lex cause not reachable: %v", err)
	}
	if pe.Loc.Col != 8 {
		t.Errorf("location: %v", pe.Loc)
	}
}

func TestParseFile_KeepGoing(t *testing.T) {
	src := "@a = ;\n@b u32;\nfun f( {}\n@c : 1;\n"
	res := ParseFile(lexer.FromString("test.em", src), Options{KeepGoing: true})
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(res.Errors), res.Errors)
	}
	var names []string
	for _, v := range res.Program.Variables() {
		names = append(names, v.Ident)
	}
	if len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Fatalf("recovered items: %v", names)
	}
	if len(res.Program.Functions()) != 0 {
		t.Fatal("failed function must not reach the program body")
	}
}

func TestParseFile_KeepGoingAfterLexError(t *testing.T) {
	src := "@a = \"oops\n@b = 1;\n"
	res := ParseFile(lexer.FromString("test.em", src), Options{KeepGoing: true})
	if len(res.Errors) != 1 || res.Errors[0].Kind != LexFailure {
		t.Fatalf("errors: %v", res.Errors)
	}
	if len(res.Program.Body) != 1 || res.Program.Variables()[0].Ident != "b" {
		t.Fatalf("body: %v", res.Program.Body)
	}
}

func TestParseFile_Limits(t *testing.T) {
	src := "x;\n@a = ;\n@b;\n"
	tests := []struct {
		name   string
		opts   Options
		errors int
		items  int
	}{
		{"fail fast", Options{}, 1, 0},
		{"max errors", Options{KeepGoing: true, MaxErrors: 1}, 1, 0},
		{"unlimited", Options{KeepGoing: true}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseFile(lexer.FromString("test.em", src), tt.opts)
			if len(res.Errors) != tt.errors || len(res.Program.Body) != tt.items {
				t.Fatalf("got %d errors and %d items", len(res.Errors), len(res.Program.Body))
			}
		})
	}
}
