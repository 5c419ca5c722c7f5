package parser

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/token"
)

func TestParseVariableDecl_Forms(t *testing.T) {
	tests := []struct {
		input    string
		isConst  bool
		isStatic bool
		ident    string
		typeName string
		init     string
	}{
		{"hello;", false, false, "hello", ast.InferredTypeName, ""},
		{"hello u32;", false, false, "hello", "u32", ""},
		{`hello = "facts";`, false, false, "hello", ast.InferredTypeName, "facts"},
		{`hello u32 = "facts";`, false, false, "hello", "u32", "facts"},
		{`hello : "facts";`, true, false, "hello", ast.InferredTypeName, "facts"},
		{`hello u32 : "facts";`, true, false, "hello", "u32", "facts"},
		{`hello :: "facts";`, true, true, "hello", ast.InferredTypeName, "facts"},
		{`hello u32 :: "facts";`, true, true, "hello", "u32", "facts"},
		{"hello :: 5;", true, true, "hello", ast.InferredTypeName, "5"},
		{"n u8 = 'x';", false, false, "n", "u8", "x"},
		{"alias : other;", true, false, "alias", ast.InferredTypeName, "other"},
		{"spaced u32 : : 7;", true, true, "spaced", "u32", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			decl, err := p.ParseVariableDecl()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decl.IsConst != tt.isConst || decl.IsStatic != tt.isStatic {
				t.Errorf("const/static: got %v/%v, want %v/%v", decl.IsConst, decl.IsStatic, tt.isConst, tt.isStatic)
			}
			if decl.Ident != tt.ident {
				t.Errorf("ident: got %q, want %q", decl.Ident, tt.ident)
			}
			if decl.TypeName() != tt.typeName {
				t.Errorf("type: got %q, want %q", decl.TypeName(), tt.typeName)
			}
			if decl.InitText() != tt.init {
				t.Errorf("init: got %q, want %q", decl.InitText(), tt.init)
			}
			if decl.IsStatic && !decl.IsConst {
				t.Error("static declaration must be const")
			}
			if !p.AtEOF() {
				t.Errorf("declaration left tokens behind: %v", p.peek().Kind)
			}
		})
	}
}

func TestParseVariableDecl_InitializerNodes(t *testing.T) {
	tests := []struct {
		input string
		check func(ast.Expr) bool
	}{
		{"x = 42;", func(e ast.Expr) bool { v, ok := e.(*ast.IntLit); return ok && v.Value == 42 }},
		{`x = "s";`, func(e ast.Expr) bool { v, ok := e.(*ast.StringLit); return ok && v.Value == "s" }},
		{`x = '\n';`, func(e ast.Expr) bool { v, ok := e.(*ast.CharLit); return ok && v.Value == "\n" }},
		{"x = y;", func(e ast.Expr) bool { v, ok := e.(*ast.Ident); return ok && v.Name == "y" }},
		{"x = 18446744073709551615;", func(e ast.Expr) bool { v, ok := e.(*ast.IntLit); return ok && v.Value == 1<<64-1 }},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			decl, err := newTestParser(tt.input).ParseVariableDecl()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(decl.Init) {
				t.Fatalf("unexpected initializer %T %v", decl.Init, decl.Init)
			}
		})
	}
}

func TestParseVariableDecl_MissingSemicolon(t *testing.T) {
	_, err := newTestParser("hello u32 = 1").ParseVariableDecl()
	expectParseError(t, err, UnexpectedEOF, token.Semicolon)
	if err.Loc.Line != 1 || err.Loc.Col != 14 {
		t.Errorf("location: got %v", err.Loc)
	}
	if want := "test.em:1:14: unexpected end of input, expected Semicolon"; err.Error() != want {
		t.Errorf("message: got %q, want %q", err.Error(), want)
	}
}

func TestParseVariableDecl_Errors(t *testing.T) {
	initSet := []token.Kind{token.Number, token.StringLit, token.CharLit, token.Ident}
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		expected []token.Kind
		found    token.Kind
	}{
		{"no name", "5 = 1;", UnexpectedToken, []token.Kind{token.Ident}, token.Number},
		{"empty", "", UnexpectedEOF, []token.Kind{token.Ident}, token.EOF},
		{"after name", "x + 1;", UnexpectedToken, []token.Kind{token.Ident, token.Colon, token.Assign, token.Semicolon}, token.Plus},
		{"after type", "x u32 v;", UnexpectedToken, []token.Kind{token.Colon, token.Assign, token.Semicolon}, token.Ident},
		{"eof after name", "x", UnexpectedEOF, []token.Kind{token.Ident, token.Colon, token.Assign, token.Semicolon}, token.EOF},
		{"missing value after eq", "x = ;", UnexpectedToken, initSet, token.Semicolon},
		{"missing value after static", "x :: ;", UnexpectedToken, initSet, token.Semicolon},
		{
			"missing value after colon", "x : ;", UnexpectedToken,
			append([]token.Kind{token.Colon}, initSet...), token.Semicolon,
		},
		{"expression initializer", "x = 1 + 2;", UnexpectedToken, []token.Kind{token.Semicolon}, token.Plus},
		{"triple colon", "x ::: 1;", UnexpectedToken, initSet, token.Colon},
		{"eq then colon", "x =: 1;", UnexpectedToken, initSet, token.Colon},
		{
			"eof after colon", "x :", UnexpectedEOF,
			append([]token.Kind{token.Colon}, initSet...), token.EOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser(tt.input).ParseVariableDecl()
			expectParseError(t, err, tt.kind, tt.expected...)
			if err.Found.Kind != tt.found {
				t.Errorf("found: got %v, want %v", err.Found.Kind, tt.found)
			}
		})
	}
}

func TestParseVariableDecl_NumberOverflow(t *testing.T) {
	_, err := newTestParser("x u64 = 18446744073709551616;").ParseVariableDecl()
	expectParseError(t, err, InvalidNumber)
	if err.Loc.Col != 9 {
		t.Errorf("location: got %v", err.Loc)
	}
}

// второй токен после ':' читается заранее; лексическая ошибка в нём
// всплывает только когда парсер до него доходит
func TestParseVariableDecl_ColonLookaheadLexError(t *testing.T) {
	tests := []struct {
		input string
		col   uint32
	}{
		{"x : $;", 5},
		{"x :: $;", 6},
		{"x u8 : \"open", 8},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := newTestParser(tt.input).ParseVariableDecl()
			expectParseError(t, err, LexFailure)
			if err.Lex == nil {
				t.Fatal("lexer error is not attached")
			}
			if err.Loc.Col != tt.col {
				t.Errorf("location: got %v, want col %d", err.Loc, tt.col)
			}
		})
	}
}
