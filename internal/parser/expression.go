package parser

import (
	"strconv"

	"ember/internal/ast"
	"ember/internal/lexer"
	"ember/internal/token"
)

// primaryStart: всё, с чего может начинаться выражение
var primaryStart = []token.Kind{
	token.Number, token.StringLit, token.CharLit, token.Ident,
	token.LParen, token.Minus, token.Bang,
}

// ParseExpr parses one expression by precedence climbing.
// It stops at the first token that cannot continue the expression.
func (p *Parser) ParseExpr() (ast.Expr, *Error) {
	return p.parseBinaryExpr(precLogicalOr)
}

// ParseExpression parses lx as a single expression followed by EOF.
func ParseExpression(lx *lexer.Lexer) (ast.Expr, error) {
	p := New(lx)
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if !p.AtEOF() {
		return nil, p.unexpected(token.EOF)
	}
	return expr, nil
}

// parseBinaryExpr: precedence climbing; minPrec: минимальный приоритет текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, *Error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return left, nil
		}
		opTok := p.advance()

		// левая ассоциативность: правая часть только с более высоким приоритетом
		right, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			LHS:  left,
			Op:   ast.ParseOp(opTok.Text),
			RHS:  right,
			Span: left.NodeSpan().Cover(right.NodeSpan()),
		}
	}
}

// parseUnaryExpr: префиксы '-' и '!' связывают сильнее любого бинарного оператора
func (p *Parser) parseUnaryExpr() (ast.Expr, *Error) {
	tok := p.peek()
	op, ok := unaryOp(tok)
	if !ok {
		return p.parsePrimaryExpr()
	}
	p.advance()
	x, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, X: x, Span: tok.Span.Cover(x.NodeSpan())}, nil
}

// parsePrimaryExpr: литерал, идентификатор или выражение в скобках.
// Идентификатор перед '(': место под будущий вызов; '(' не трогаем.
func (p *Parser) parsePrimaryExpr() (ast.Expr, *Error) {
	switch p.peek().Kind {
	case token.Number, token.StringLit, token.CharLit, token.Ident:
		return p.parseLiteral()
	case token.LParen:
		p.advance()
		inner, err := p.parseBinaryExpr(precLogicalOr)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.unexpected(primaryStart...)
	}
}

// parseLiteral съедает ровно один токен Number/StringLit/CharLit/Ident
// и строит из него узел выражения.
func (p *Parser) parseLiteral() (ast.Expr, *Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		v, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidNumber, Found: tok, Span: tok.Span, Loc: tok.Loc}
		}
		p.advance()
		return &ast.IntLit{Value: v, Span: tok.Span}, nil
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Value: tok.Text, Span: tok.Span}, nil
	case token.CharLit:
		p.advance()
		return &ast.CharLit{Value: tok.Text, Span: tok.Span}, nil
	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Span: tok.Span}, nil
	default:
		return nil, p.unexpected(token.Number, token.StringLit, token.CharLit, token.Ident)
	}
}
