package lexer

import (
	"strings"
	"unicode/utf8"

	"ember/internal/source"
	"ember/internal/token"
)

// scanString: "..." с escape \n \t \r \\ \' \".
// Сырой '\n' или '\r' либо EOF до закрывающей кавычки: UnterminatedString.
// После неверного escape дочитываем литерал до конца, чтобы следующий
// Next начал с чистого места, и только потом возвращаем ошибку.
func (lx *Lexer) scanString(loc source.Location) (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var (
		sb       strings.Builder
		firstErr *Error
	)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if firstErr != nil {
				return token.Token{Span: sp}, firstErr
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: sb.String()}, nil
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Span: sp}, &Error{Kind: UnterminatedString, Span: sp, Loc: loc}
		case '\\':
			c, err := lx.scanEscape('"')
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Span: sp}, &Error{Kind: UnterminatedString, Span: sp, Loc: loc}
}

// scanChar: ровно один логический символ (байт, escape или UTF-8 руна)
// между одинарными кавычками.
func (lx *Lexer) scanChar(loc source.Location) (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	fail := func(kind ErrorKind) (token.Token, error) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Span: sp}, &Error{Kind: kind, Span: sp, Loc: loc}
	}

	var text string
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF(), isLineEnd(b):
		return fail(UnterminatedChar)
	case b == '\'':
		lx.cursor.Bump()
		return fail(EmptyCharLiteral)
	case b == '\\':
		c, err := lx.scanEscape('\'')
		if err != nil {
			// закрывающую кавычку всё равно съедаем, если она на месте
			lx.cursor.Eat('\'')
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Span: sp}, err
		}
		text = string([]byte{c})
	case b < utf8.RuneSelf:
		text = string([]byte{lx.cursor.Bump()})
	default:
		text = lx.bumpRune()
	}

	if !lx.cursor.Eat('\'') {
		return fail(UnterminatedChar)
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: text}, nil
}

// scanEscape съедает '\\' и следующий байт, возвращает его значение.
// quote: текущий разделитель: '"' допустим только внутри строк.
func (lx *Lexer) scanEscape(quote byte) (byte, *Error) {
	loc := lx.cursor.Location()
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	if lx.cursor.EOF() || isLineEnd(lx.cursor.Peek()) {
		// обрыв сразу после '\\': пусть вызывающий сообщит о незакрытом литерале
		return 0, nil
	}
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		if quote == '"' {
			return '"', nil
		}
	}
	return 0, &Error{Kind: UnsupportedEscape, Byte: b, Span: lx.cursor.SpanFrom(start), Loc: loc}
}

// bumpRune съедает одну UTF-8 руну (или один байт, если последовательность битая).
func (lx *Lexer) bumpRune() string {
	rest := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
	_, sz := utf8.DecodeRune(rest)
	if sz < 1 {
		sz = 1
	}
	start := lx.cursor.Mark()
	for range sz {
		lx.cursor.Bump()
	}
	return lx.text(lx.cursor.SpanFrom(start))
}
