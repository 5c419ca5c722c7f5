package lexer

import (
	"ember/internal/source"
	"ember/internal/token"
)

// Lexer превращает байты одного файла в поток токенов.
// Один Lexer живёт ровно один проход и не умеет откатываться назад.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	directive string
}

// New creates a lexer over the file. A leading "#!" line is consumed
// immediately and made available through Directive.
func New(file *source.File) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
	lx.scanDirective()
	return lx
}

// FromString is a shortcut for lexing an in-memory buffer.
func FromString(name, src string) *Lexer {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return New(fs.Get(id))
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File { return lx.file }

// Directive returns the leading "#!" line without its terminator, or "".
func (lx *Lexer) Directive() string { return lx.directive }

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF и nil.
// Лексическая ошибка прерывает только текущий вызов: курсор уже стоит
// за ошибочным фрагментом, и следующий Next продолжит с него.
func (lx *Lexer) Next() (token.Token, error) {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return lx.eofToken(), nil
	}

	// Location фиксируется до того, как токен будет съеден.
	loc := lx.cursor.Location()
	ch := lx.cursor.Peek()

	var (
		tok token.Token
		err error
	)
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '\'':
		tok, err = lx.scanChar(loc)
	case ch == '"':
		tok, err = lx.scanString(loc)
	default:
		tok, err = lx.scanOperatorOrPunct(loc)
	}
	if err != nil {
		return token.Token{Kind: token.Invalid, Span: tok.Span, Loc: loc}, err
	}
	tok.Loc = loc
	return tok, nil
}

// EmptySpan returns a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) eofToken() token.Token {
	return token.Token{
		Kind: token.EOF,
		Span: lx.EmptySpan(),
		Loc:  lx.cursor.Location(),
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
