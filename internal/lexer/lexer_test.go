package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

// collectAllTokens собирает все токены до EOF; на первой ошибке останавливается.
func collectAllTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	lx := lexer.FromString("test.em", input)
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected lex error for %q: %v", input, err)
		}
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// expectTokens проверяет последовательность типов токенов
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	tokens := collectAllTokens(t, input)
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

// expectSingleToken проверяет, что вход создаёт ровно один токен
func expectSingleToken(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	tokens := collectAllTokens(t, input)
	if len(tokens) != 1 {
		t.Fatalf("Expected 1 token, got %v", tokensToString(tokens))
	}
	if tokens[0].Kind != kind {
		t.Errorf("Expected kind %v, got %v", kind, tokens[0].Kind)
	}
	if tokens[0].Text != text {
		t.Errorf("Expected text %q, got %q", text, tokens[0].Text)
	}
}

// expectLexError возвращает первую ошибку лексера на входе.
func expectLexError(t *testing.T, input string) *lexer.Error {
	t.Helper()
	lx := lexer.FromString("test.em", input)
	for range 64 {
		tok, err := lx.Next()
		if err != nil {
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %T", err)
			}
			return lexErr
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	t.Fatalf("expected lex error for %q", input)
	return nil
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== Идентификаторы и ключевые слова ======

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"camelCase", "camelCase"},
		{"UPPER", "UPPER"},
		{"u", "u"},
		{"u32", "u32"},
		{"x_1y", "x_1y"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Ident, tt.text)
		})
	}
}

func TestNumberThenIdentifier(t *testing.T) {
	tokens := collectAllTokens(t, "32u")
	if len(tokens) != 2 || tokens[0].Kind != token.Number || tokens[0].Text != "32" || tokens[1].Text != "u" {
		t.Fatalf("unexpected tokens: %v", tokensToString(tokens))
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"if", token.KwIf}, {"else", token.KwElse}, {"for", token.KwFor},
		{"while", token.KwWhile}, {"loop", token.KwLoop}, {"break", token.KwBreak},
		{"continue", token.KwContinue}, {"return", token.KwReturn},
		{"include", token.KwInclude}, {"to", token.KwTo}, {"in", token.KwIn},
		{"enum", token.KwEnum}, {"struct", token.KwStruct},
		{"fun", token.KwFun}, {"func", token.KwFun}, {"@", token.At},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

// ====== Числа ======

func TestNumbers(t *testing.T) {
	expectSingleToken(t, "0", token.Number, "0")
	expectSingleToken(t, "1234567890", token.Number, "1234567890")
	// без точки, знака и экспоненты
	expectTokens(t, "-1.5", []token.Kind{token.Minus, token.Number, token.Dot, token.Number})
}

// ====== Строки и символы ======

func TestStringLiteralContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"plain", `"facts"`, "facts"},
		{"empty", `""`, ""},
		{"spaces", `"a b  c"`, "a b  c"},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"tab escape", `"\t"`, "\t"},
		{"cr escape", `"\r"`, "\r"},
		{"backslash", `"\\"`, "\\"},
		{"quote", `"say \"hi\""`, `say "hi"`},
		{"single quote", `"\'"`, "'"},
		{"utf8", `"привет"`, "привет"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.StringLit, tt.text)
		})
	}
}

func TestStringRoundTripWithoutEscapes(t *testing.T) {
	for _, body := range []string{"x", "hello world", "1 + 2;", "@fun main(){}", "//not a comment"} {
		src := `"` + body + `"`
		tokens := collectAllTokens(t, src)
		if len(tokens) != 1 || tokens[0].Text != body {
			t.Fatalf("literal %q lexed to %v", src, tokensToString(tokens))
		}
	}
}

func TestStringEndsAtFirstUnescapedQuote(t *testing.T) {
	lx := lexer.FromString("test.em", `"a"b"`)
	tok, err := lx.Next()
	if err != nil || tok.Kind != token.StringLit || tok.Text != "a" {
		t.Fatalf("first token = %v %q (%v)", tok.Kind, tok.Text, err)
	}
	tok, err = lx.Next()
	if err != nil || tok.Kind != token.Ident || tok.Text != "b" {
		t.Fatalf("second token = %v %q (%v)", tok.Kind, tok.Text, err)
	}
	_, err = lx.Next()
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Kind != lexer.UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", err)
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{`'a'`, "a"},
		{`' '`, " "},
		{`'\t'`, "\t"},
		{`'\n'`, "\n"},
		{`'\r'`, "\r"},
		{`'\\'`, "\\"},
		{`'\''`, "'"},
		{`'ж'`, "ж"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.CharLit, tt.text)
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  lexer.ErrorKind
		b     byte
		line  uint32
		col   uint32
	}{
		{"unterminated string eof", `x = "abc`, lexer.UnterminatedString, 0, 1, 5},
		{"newline in string", "\"ab\ncd\"", lexer.UnterminatedString, 0, 1, 1},
		{"raw cr in string", "\"a\rb\"", lexer.UnterminatedString, 0, 1, 1},
		{"backslash before raw cr", "\"a\\\rb\"", lexer.UnterminatedString, 0, 1, 1},
		{"raw cr in char", "'\r'", lexer.UnterminatedChar, 0, 1, 1},
		{"raw cr after char", "'a\r'", lexer.UnterminatedChar, 0, 1, 1},
		{"unterminated char", `'a`, lexer.UnterminatedChar, 0, 1, 1},
		{"char too long", `'ab'`, lexer.UnterminatedChar, 0, 1, 1},
		{"empty char", `''`, lexer.EmptyCharLiteral, 0, 1, 1},
		{"bad escape in string", `"a\qb"`, lexer.UnsupportedEscape, 'q', 1, 3},
		{"bad escape in char", `'\x'`, lexer.UnsupportedEscape, 'x', 1, 2},
		{"dquote escape in char", `'\"'`, lexer.UnsupportedEscape, '"', 1, 2},
		{"unknown byte", "a $", lexer.UnrecognizedByte, '$', 1, 3},
		{"unknown byte next line", "a\n  #", lexer.UnrecognizedByte, '#', 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := expectLexError(t, tt.input)
			if err.Kind != tt.kind {
				t.Fatalf("kind: got %v, want %v", err.Kind, tt.kind)
			}
			if err.Byte != tt.b {
				t.Errorf("byte: got %q, want %q", err.Byte, tt.b)
			}
			if err.Loc.Line != tt.line || err.Loc.Col != tt.col {
				t.Errorf("location: got %d:%d, want %d:%d", err.Loc.Line, err.Loc.Col, tt.line, tt.col)
			}
			if err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

// Одиночный '\r' вне литералов: пробел, а не перевод строки, как и в
// индексе строк FileSet, так что Loc и Resolve совпадают.
func TestLoneCRIsWhitespace(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("cr.em", []byte("x\ry"))))

	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	if len(toks) != 2 || toks[1].Text != "y" {
		t.Fatalf("tokens: %v", tokensToString(toks))
	}
	if toks[1].Loc.Line != 1 || toks[1].Loc.Col != 3 {
		t.Errorf("y at %d:%d, want 1:3", toks[1].Loc.Line, toks[1].Loc.Col)
	}
	start, _ := fs.Resolve(toks[1].Span)
	if start.Line != toks[1].Loc.Line || start.Col != toks[1].Loc.Col {
		t.Errorf("Resolve = %d:%d, Loc = %d:%d", start.Line, start.Col, toks[1].Loc.Line, toks[1].Loc.Col)
	}
}

func TestLexingContinuesAfterError(t *testing.T) {
	lx := lexer.FromString("test.em", `"a\qb" ok`)
	if _, err := lx.Next(); err == nil {
		t.Fatal("expected an error for the bad escape")
	}
	tok, err := lx.Next()
	if err != nil || tok.Kind != token.Ident || tok.Text != "ok" {
		t.Fatalf("expected Ident ok after the broken literal, got %v %q (%v)", tok.Kind, tok.Text, err)
	}
}

// ====== Операторы и пунктуация ======

func TestPunctuation(t *testing.T) {
	expectTokens(t, "( ) { } [ ] , : ; .", []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket,
		token.RBracket, token.Comma, token.Colon, token.Semicolon, token.Dot,
	})
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "+ - * / % & | ^ ! << >> && || ^^ < <= > >= == !=", []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Amp, token.Pipe, token.Caret, token.Bang, token.Shl, token.Shr,
		token.AndAnd, token.OrOr, token.CaretCaret,
		token.Lt, token.LtEq, token.Gt, token.GtEq, token.EqEq, token.BangEq,
	})
	expectTokens(t, "= += -= *= /= %= &= |= ^=", []token.Kind{
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign,
	})
}

func TestDoubleColonIsTwoTokens(t *testing.T) {
	expectTokens(t, "x::1", []token.Kind{token.Ident, token.Colon, token.Colon, token.Number})
}

// ====== Комментарии, пробелы, директива ======

func TestLineComments(t *testing.T) {
	expectTokens(t, "a // comment\nb//c\n// only\n", []token.Kind{token.Ident, token.Ident})
	expectTokens(t, "a / b", []token.Kind{token.Ident, token.Slash, token.Ident})
	expectTokens(t, "// trailing without newline", nil)
}

func TestLocationsAfterComments(t *testing.T) {
	tokens := collectAllTokens(t, "// header\n  @x\tu;\n")
	want := []struct {
		kind      token.Kind
		line, col uint32
	}{
		{token.At, 2, 3},
		{token.Ident, 2, 4},
		{token.Ident, 2, 6},
		{token.Semicolon, 2, 7},
	}
	if len(tokens) != len(want) {
		t.Fatalf("unexpected tokens: %v", tokensToString(tokens))
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Loc.Line != w.line || tokens[i].Loc.Col != w.col {
			t.Errorf("token %d: got %v at %d:%d, want %v at %d:%d",
				i, tokens[i].Kind, tokens[i].Loc.Line, tokens[i].Loc.Col, w.kind, w.line, w.col)
		}
		if tokens[i].Loc.File != "test.em" {
			t.Errorf("token %d: file %q", i, tokens[i].Loc.File)
		}
	}
}

func TestStringLocationIsOpeningQuote(t *testing.T) {
	tokens := collectAllTokens(t, `x = "abc";`)
	if tokens[2].Loc.Col != 5 || tokens[2].Span.Start != 4 || tokens[2].Span.End != 9 {
		t.Fatalf("string token at col %d span %v", tokens[2].Loc.Col, tokens[2].Span)
	}
}

func TestDirective(t *testing.T) {
	lx := lexer.FromString("test.em", "#!/usr/bin/env ember\n@x;")
	if lx.Directive() != "#!/usr/bin/env ember" {
		t.Fatalf("directive = %q", lx.Directive())
	}
	tok, err := lx.Next()
	if err != nil || tok.Kind != token.At || tok.Loc.Line != 2 || tok.Loc.Col != 1 {
		t.Fatalf("first token after directive: %v at %v (%v)", tok.Kind, tok.Loc, err)
	}

	if d := lexer.FromString("test.em", "@x; #!nope").Directive(); d != "" {
		t.Fatalf("directive must only be recognised at the start, got %q", d)
	}
}

func TestIdempotentEOF(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "a", "// c"} {
		lx := lexer.FromString("test.em", input)
		seenEOF := 0
		for range 10 {
			tok, err := lx.Next()
			if err != nil {
				t.Fatalf("input %q: unexpected error %v", input, err)
			}
			if tok.Kind == token.EOF {
				seenEOF++
			}
		}
		if seenEOF < 9 {
			t.Fatalf("input %q: EOF returned only %d times", input, seenEOF)
		}
	}
}

func TestDeclarationStream(t *testing.T) {
	expectTokens(t, "@hello u32 :: \"facts\";\nfun main(a b, c d) u32 {}", []token.Kind{
		token.At, token.Ident, token.Ident, token.Colon, token.Colon, token.StringLit, token.Semicolon,
		token.KwFun, token.Ident, token.LParen, token.Ident, token.Ident, token.Comma,
		token.Ident, token.Ident, token.RParen, token.Ident, token.LBrace, token.RBrace,
	})
}
