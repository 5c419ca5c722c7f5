package parser

import (
	"ember/internal/ast"
	"ember/internal/token"
)

// ParseVariableDecl parses a variable declaration; the leading '@' must
// already be consumed.
//
//	name ;                 name TYPE ;
//	name = V ;             name TYPE = V ;
//	name : V ;             name TYPE : V ;       const
//	name :: V ;            name TYPE :: V ;      const + static
//
// The form is chosen with one token of lookahead; V is exactly one
// Number, StringLit, CharLit or Ident token.
func (p *Parser) ParseVariableDecl() (*ast.VariableDecl, *Error) {
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDecl{
		Ident: nameTok.Text,
		Span:  nameTok.Span,
		Loc:   nameTok.Loc,
	}

	// необязательный тип: второй идентификатор подряд
	if p.at(token.Ident) {
		typeTok := p.advance()
		decl.Kind = &ast.Type{Name: typeTok.Text, Span: typeTok.Span}
	}

	var declSet []token.Kind
	if decl.Kind == nil {
		declSet = []token.Kind{token.Ident, token.Colon, token.Assign, token.Semicolon}
	} else {
		declSet = []token.Kind{token.Colon, token.Assign, token.Semicolon}
	}

	switch p.peek().Kind {
	case token.Semicolon:
		semi := p.advance()
		decl.Span = decl.Span.Cover(semi.Span)
		return decl, nil
	case token.Assign:
		p.advance()
	case token.Colon:
		decl.IsConst = true
		// второй ':' подряд: static; без const он недостижим
		if p.peekN(1).Kind == token.Colon {
			p.advance()
			decl.IsStatic = true
		}
		p.advance()
	default:
		return nil, p.unexpected(declSet...)
	}

	value, err := p.parseInitializer(decl.IsConst && !decl.IsStatic)
	if err != nil {
		return nil, err
	}
	decl.Init = value

	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	decl.Span = decl.Span.Cover(semi.Span)
	return decl, nil
}

// parseInitializer: ровно один токен значения. После одиночного ':'
// ещё допустим второй ':', поэтому он попадает в ожидаемое множество.
func (p *Parser) parseInitializer(afterSingleColon bool) (ast.Expr, *Error) {
	if p.atOr(token.Number, token.StringLit, token.CharLit, token.Ident) {
		return p.parseLiteral()
	}
	if afterSingleColon {
		return nil, p.unexpected(token.Colon, token.Number, token.StringLit, token.CharLit, token.Ident)
	}
	return nil, p.unexpected(token.Number, token.StringLit, token.CharLit, token.Ident)
}
