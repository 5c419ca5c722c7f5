package parser

import (
	"ember/internal/ast"
	"ember/internal/token"
)

// ParseFunctionDecl parses "name(arg type, ...) ret {}"; the 'fun' keyword
// must already be consumed. Arguments are separated by exactly one comma:
// a leading or dangling comma is an error. The body must be empty.
func (p *Parser) ParseFunctionDecl() (*ast.FunctionDecl, *Error) {
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDecl{
		Ident: nameTok.Text,
		Span:  nameTok.Span,
		Loc:   nameTok.Loc,
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.parseFnArgs()
	if err != nil {
		return nil, err
	}
	fn.Args = args

	retTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	fn.ReturnType = ast.Type{Name: retTok.Text, Span: retTok.Span}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	// TODO: разбирать тело функции, когда появятся statement-узлы.
	closeTok, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}
	fn.Span = fn.Span.Cover(closeTok.Span)
	return fn, nil
}

// parseFnArgs читает пары "имя тип" до ')', съедая её.
func (p *Parser) parseFnArgs() ([]ast.Arg, *Error) {
	if p.at(token.RParen) {
		p.advance()
		return nil, nil
	}

	var args []ast.Arg
	for {
		arg, err := p.parseFnArg(len(args) == 0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.peek().Kind {
		case token.Comma:
			p.advance()
		case token.RParen:
			p.advance()
			return args, nil
		default:
			return nil, p.unexpected(token.Comma, token.RParen)
		}
	}
}

func (p *Parser) parseFnArg(first bool) (ast.Arg, *Error) {
	if !p.at(token.Ident) {
		if first {
			return ast.Arg{}, p.unexpected(token.Ident, token.RParen)
		}
		return ast.Arg{}, p.unexpected(token.Ident)
	}
	nameTok := p.advance()
	typeTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.Arg{}, err
	}
	return ast.Arg{
		Ident: nameTok.Text,
		Kind:  ast.Type{Name: typeTok.Text, Span: typeTok.Span},
		Span:  nameTok.Span.Cover(typeTok.Span),
	}, nil
}
