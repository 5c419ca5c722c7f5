package ast

import (
	"strconv"

	"ember/internal/source"
)

// Expr is an expression node. String renders it fully parenthesised,
// so two trees print the same iff they have the same shape.
type Expr interface {
	Node
	exprNode()
}

type (
	// Ident is a bare identifier reference.
	Ident struct {
		Name string
		Span source.Span
	}

	// IntLit is a decimal integer literal.
	IntLit struct {
		Value uint64
		Span  source.Span
	}

	// FloatLit is reserved for floating point literals; the lexer does not produce them yet.
	FloatLit struct {
		Value float64
		Span  source.Span
	}

	// StringLit holds the unescaped string contents.
	StringLit struct {
		Value string
		Span  source.Span
	}

	// CharLit holds the unescaped character (one byte or one UTF-8 rune).
	CharLit struct {
		Value string
		Span  source.Span
	}

	// Unary is a prefix operator applied to X.
	Unary struct {
		Op   UnaryOp
		X    Expr
		Span source.Span
	}

	// Binary is LHS Op RHS.
	Binary struct {
		LHS  Expr
		Op   Op
		RHS  Expr
		Span source.Span
	}
)

func (*Ident) exprNode()     {}
func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*CharLit) exprNode()   {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}

func (e *Ident) NodeSpan() source.Span     { return e.Span }
func (e *IntLit) NodeSpan() source.Span    { return e.Span }
func (e *FloatLit) NodeSpan() source.Span  { return e.Span }
func (e *StringLit) NodeSpan() source.Span { return e.Span }
func (e *CharLit) NodeSpan() source.Span   { return e.Span }
func (e *Unary) NodeSpan() source.Span     { return e.Span }
func (e *Binary) NodeSpan() source.Span    { return e.Span }

func (e *Ident) String() string  { return e.Name }
func (e *IntLit) String() string { return strconv.FormatUint(e.Value, 10) }
func (e *FloatLit) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}
func (e *StringLit) String() string { return strconv.Quote(e.Value) }

func (e *CharLit) String() string {
	// strconv.QuoteRune экранирует так же, как Go; одиночная кавычка внутри тоже
	r := []rune(e.Value)
	if len(r) != 1 {
		return "'" + e.Value + "'"
	}
	return strconv.QuoteRune(r[0])
}

func (e *Unary) String() string {
	return "(" + e.Op.String() + e.X.String() + ")"
}

func (e *Binary) String() string {
	return "(" + e.LHS.String() + " " + e.Op.String() + " " + e.RHS.String() + ")"
}
