package parser

import (
	"ember/internal/ast"
	"ember/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативны.
const (
	precLogicalOr      = 1 // ||
	precLogicalXor     = 2 // ^^
	precLogicalAnd     = 3 // &&
	precBitwiseOr      = 4 // |
	precBitwiseXor     = 5 // ^
	precBitwiseAnd     = 6 // &
	precShift          = 7 // << >>
	precAdditive       = 8 // + -
	precMultiplicative = 9 // * / %
)

// binaryPrec возвращает приоритет оператора или -1, если это не бинарный оператор.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.CaretCaret:
		return precLogicalXor
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

// unaryOp возвращает унарный оператор для токена
func unaryOp(tok token.Token) (ast.UnaryOp, bool) {
	switch tok.Kind {
	case token.Minus, token.Bang:
		return ast.ParseUnaryOp(tok.Text), true
	default:
		return 0, false
	}
}
