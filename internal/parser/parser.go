package parser

import (
	"errors"
	"slices"

	"ember/internal/ast"
	"ember/internal/lexer"
	"ember/internal/token"
)

// Options tune ParseFile.
type Options struct {
	// KeepGoing makes ParseFile skip a broken item and continue with the next one.
	KeepGoing bool
	// MaxErrors caps collected errors in KeepGoing mode; 0 means unlimited.
	MaxErrors uint
}

// Result of ParseFile. Program holds every item that parsed cleanly.
type Result struct {
	Program *ast.Program
	Errors  []*Error
}

// lookahead: уже вытянутый из лексера токен вместе с его ошибкой
type lookahead struct {
	tok token.Token
	err *lexer.Error
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	look []lookahead // не больше пары токенов
}

// New creates a parser reading from lx.
func New(lx *lexer.Lexer) *Parser {
	return &Parser{lx: lx, look: make([]lookahead, 0, 2)}
}

// ParseProgram parses the whole input and fails on the first error.
// No partial program is returned on failure.
func ParseProgram(lx *lexer.Lexer) (*ast.Program, error) {
	p := New(lx)
	return p.ParseProgram()
}

// ParseFile parses the whole input according to opts.
// Without KeepGoing it stops at the first error, like ParseProgram,
// but still returns the items parsed before it.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := New(lx)
	prog := &ast.Program{Directive: lx.Directive()}
	var errs []*Error
	for !p.AtEOF() {
		item, err := p.ParseItem()
		if err != nil {
			errs = append(errs, err)
			if !opts.KeepGoing || (opts.MaxErrors > 0 && uint(len(errs)) >= opts.MaxErrors) {
				break
			}
			p.Recover()
			continue
		}
		prog.Body = append(prog.Body, item)
	}
	return Result{Program: prog, Errors: errs}
}

// ParseProgram drives the top-level loop until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{Directive: p.lx.Directive()}
	for !p.AtEOF() {
		item, err := p.ParseItem()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, item)
	}
	return prog, nil
}

// AtEOF reports whether the next token is EOF.
func (p *Parser) AtEOF() bool {
	return p.at(token.EOF)
}

// ParseItem parses one top-level item, dispatching on its introducer:
// '@' for a variable, 'fun' for a function.
func (p *Parser) ParseItem() (ast.Node, *Error) {
	switch p.peek().Kind {
	case token.At:
		at := p.advance()
		decl, err := p.ParseVariableDecl()
		if err != nil {
			return nil, err
		}
		decl.Span = at.Span.Cover(decl.Span)
		decl.Loc = at.Loc
		return decl, nil
	case token.KwFun:
		kw := p.advance()
		fn, err := p.ParseFunctionDecl()
		if err != nil {
			return nil, err
		}
		fn.Span = kw.Span.Cover(fn.Span)
		fn.Loc = kw.Loc
		return fn, nil
	default:
		return nil, p.unexpected(token.At, token.KwFun)
	}
}

// Recover skips tokens up to the next '@', 'fun' or EOF.
// Lexical errors met on the way are dropped.
func (p *Parser) Recover() {
	for !p.atOr(token.At, token.KwFun, token.EOF) {
		p.advance()
	}
}

// Err converts any error returned by this package into *Error.
func Err(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func (p *Parser) fill(n int) {
	for len(p.look) < n {
		tok, err := p.lx.Next()
		var lexErr *lexer.Error
		if err != nil {
			if !errors.As(err, &lexErr) {
				lexErr = &lexer.Error{Span: tok.Span, Loc: tok.Loc}
			}
		}
		p.look = append(p.look, lookahead{tok: tok, err: lexErr})
	}
}

// peek возвращает текущий токен, не съедая его
func (p *Parser) peek() token.Token {
	p.fill(1)
	return p.look[0].tok
}

// peekN смотрит на n-й токен вперёд (0: текущий)
func (p *Parser) peekN(n int) token.Token {
	p.fill(n + 1)
	return p.look[n].tok
}

// advance: съедает текущий токен
func (p *Parser) advance() token.Token {
	p.fill(1)
	tok := p.look[0].tok
	if tok.Kind == token.EOF {
		return tok
	}
	p.look = p.look[1:]
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// expect: ожидаем конкретный токен, иначе ошибка с ожидаемым множеством {k}
func (p *Parser) expect(k token.Kind) (token.Token, *Error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(k)
}

// unexpected строит ошибку для текущего токена: лексическую, EOF или UnexpectedToken.
func (p *Parser) unexpected(expected ...token.Kind) *Error {
	p.fill(1)
	cur := p.look[0]
	e := &Error{
		Expected: expected,
		Found:    cur.tok,
		Span:     cur.tok.Span,
		Loc:      cur.tok.Loc,
	}
	switch {
	case cur.err != nil:
		e.Kind = LexFailure
		e.Lex = cur.err
		e.Loc = cur.err.Loc
	case cur.tok.Kind == token.EOF:
		e.Kind = UnexpectedEOF
	default:
		e.Kind = UnexpectedToken
	}
	return e
}
