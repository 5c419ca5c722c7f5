package lexer

import (
	"unicode/utf8"

	"ember/internal/source"
	"ember/internal/token"
)

var singleByteOps = [256]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'.': token.Dot,
	'@': token.At,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
}

// Жадность: сначала 2-символьные, затем 1-символьные из таблицы.
// "::" намеренно не склеивается: парсер деклараций видит два Colon подряд.
func (lx *Lexer) scanOperatorOrPunct(loc source.Location) (token.Token, error) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, error) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}, nil
	}

	switch {
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('^', '^'):
		return emit(token.CaretCaret)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	}

	ch := lx.cursor.Peek()
	if k := singleByteOps[ch]; k != token.Invalid {
		lx.cursor.Bump()
		return emit(k)
	}

	// неизвестный байт: съедаем целую руну, чтобы не резать UTF-8 пополам
	if ch >= utf8.RuneSelf {
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Span: sp}, &Error{Kind: UnrecognizedByte, Byte: ch, Span: sp, Loc: loc}
}
