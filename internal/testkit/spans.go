package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/ast"
	"ember/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every item span is non-empty, points at sf and lies within its content
// 2) items are in source order and do not overlap
// 3) names, types, args and initializers sit inside their item span
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, item := range prog.Body {
		sp := item.NodeSpan()
		if sp.Empty() || sp.End < sp.Start {
			return fmt.Errorf("item %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("item %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d: span %v overlaps previous item ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if err := checkChildren(item, sp); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func checkChildren(item ast.Node, outer source.Span) error {
	switch n := item.(type) {
	case *ast.VariableDecl:
		if n.Kind != nil {
			if err := within("type "+n.Kind.Name, n.Kind.Span, outer); err != nil {
				return err
			}
		}
		if n.Init != nil {
			return checkExpr(n.Init, outer)
		}
	case *ast.FunctionDecl:
		for _, a := range n.Args {
			if err := within("arg "+a.Ident, a.Span, outer); err != nil {
				return err
			}
			if err := within("arg type "+a.Kind.Name, a.Kind.Span, a.Span); err != nil {
				return err
			}
		}
		return within("return type", n.ReturnType.Span, outer)
	default:
		return fmt.Errorf("unexpected node %T", item)
	}
	return nil
}

// checkExpr walks the tree; parents must cover their operands
func checkExpr(e ast.Expr, outer source.Span) error {
	sp := e.NodeSpan()
	if err := within(e.String(), sp, outer); err != nil {
		return err
	}
	switch x := e.(type) {
	case *ast.Unary:
		return checkExpr(x.X, sp)
	case *ast.Binary:
		if err := checkExpr(x.LHS, sp); err != nil {
			return err
		}
		return checkExpr(x.RHS, sp)
	}
	return nil
}

func within(what string, inner, outer source.Span) error {
	if inner.File != outer.File {
		return fmt.Errorf("%s: file mismatch: got=%d want=%d", what, inner.File, outer.File)
	}
	if inner.Start < outer.Start || inner.End > outer.End {
		return fmt.Errorf("%s: span %v is outside %v", what, inner, outer)
	}
	return nil
}
