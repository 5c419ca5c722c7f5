package ast

import (
	"strings"

	"ember/internal/source"
)

// InferredTypeName is what TypeName reports when a declaration has no explicit type.
const InferredTypeName = "inferred"

// Type is a named type reference, e.g. u32.
type Type struct {
	Name string
	Span source.Span
}

func (t Type) String() string { return t.Name }

// VariableDecl is a top-level "@" declaration.
//
// IsStatic implies IsConst: the parser only reaches the static form
// through the const (':') branch.
type VariableDecl struct {
	IsConst  bool
	IsStatic bool
	Ident    string
	// Kind is nil when the type is inferred.
	Kind *Type
	// Init is nil for the forms without an initializer.
	Init Expr
	Span source.Span
	Loc  source.Location
}

func (d *VariableDecl) NodeSpan() source.Span { return d.Span }

// TypeName returns the explicit type name or InferredTypeName.
func (d *VariableDecl) TypeName() string {
	if d.Kind == nil {
		return InferredTypeName
	}
	return d.Kind.Name
}

// InitText returns the initializer as plain text: the literal value for
// string and char initializers, the rendered expression otherwise, "" if absent.
func (d *VariableDecl) InitText() string {
	switch v := d.Init.(type) {
	case nil:
		return ""
	case *StringLit:
		return v.Value
	case *CharLit:
		return v.Value
	default:
		return v.String()
	}
}

func (d *VariableDecl) String() string {
	var sb strings.Builder
	sb.WriteString("@")
	sb.WriteString(d.Ident)
	if d.Kind != nil {
		sb.WriteByte(' ')
		sb.WriteString(d.Kind.Name)
	}
	if d.Init != nil {
		switch {
		case d.IsStatic:
			sb.WriteString(" :: ")
		case d.IsConst:
			sb.WriteString(" : ")
		default:
			sb.WriteString(" = ")
		}
		sb.WriteString(d.Init.String())
	}
	sb.WriteByte(';')
	return sb.String()
}

// Arg is one "name type" pair of a function signature.
type Arg struct {
	Ident string
	Kind  Type
	Span  source.Span
}

func (a Arg) String() string { return a.Ident + " " + a.Kind.Name }

// FunctionDecl is a "fun name(args) ret { ... }" item.
type FunctionDecl struct {
	Ident      string
	Args       []Arg
	ReturnType Type
	Body       []Stmt
	Span       source.Span
	Loc        source.Location
}

func (f *FunctionDecl) NodeSpan() source.Span { return f.Span }

func (f *FunctionDecl) String() string {
	var sb strings.Builder
	sb.WriteString("fun ")
	sb.WriteString(f.Ident)
	sb.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(") ")
	sb.WriteString(f.ReturnType.Name)
	if len(f.Body) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, st := range f.Body {
		sb.WriteString("    ")
		sb.WriteString(st.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}
