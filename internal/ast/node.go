package ast

import (
	"strings"

	"ember/internal/source"
)

// Node is anything that can appear in a Program body.
type Node interface {
	NodeSpan() source.Span
	String() string
}

// Stmt is a statement inside a function body.
// Body parsing is not implemented yet, so no concrete statement exists.
type Stmt interface {
	Node
}

// Program is the result of parsing one file: the top-level items in source order.
type Program struct {
	// Directive is the leading "#!" line, if any.
	Directive string
	Body      []Node
}

// Functions returns the function declarations of the program in order.
func (p *Program) Functions() []*FunctionDecl {
	var out []*FunctionDecl
	for _, n := range p.Body {
		if fn, ok := n.(*FunctionDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Variables returns the top-level variable declarations in order.
func (p *Program) Variables() []*VariableDecl {
	var out []*VariableDecl
	for _, n := range p.Body {
		if v, ok := n.(*VariableDecl); ok {
			out = append(out, v)
		}
	}
	return out
}

// String renders the program back to source form, one item per line.
func (p *Program) String() string {
	var sb strings.Builder
	if p.Directive != "" {
		sb.WriteString(p.Directive)
		sb.WriteByte('\n')
	}
	for _, n := range p.Body {
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
