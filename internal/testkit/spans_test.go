package testkit

import (
	"strings"
	"testing"

	"ember/internal/ast"
	"ember/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.em", []byte("@a = 1;\nfun f(x u8) u8 {}\n")))

	good := func() *ast.Program {
		return &ast.Program{Body: []ast.Node{
			&ast.VariableDecl{Ident: "a", Init: &ast.IntLit{Value: 1, Span: sp(5, 6)}, Span: sp(1, 7)},
			&ast.FunctionDecl{
				Ident:      "f",
				Args:       []ast.Arg{{Ident: "x", Kind: ast.Type{Name: "u8", Span: sp(16, 18)}, Span: sp(14, 18)}},
				ReturnType: ast.Type{Name: "u8", Span: sp(20, 22)},
				Span:       sp(12, 26),
			},
		}}
	}

	tests := []struct {
		name   string
		mutate func(p *ast.Program)
		want   string
	}{
		{name: "valid", mutate: func(*ast.Program) {}},
		{
			name:   "empty item",
			mutate: func(p *ast.Program) { p.Body[0].(*ast.VariableDecl).Span = sp(3, 3) },
			want:   "empty span",
		},
		{
			name:   "beyond content",
			mutate: func(p *ast.Program) { p.Body[1].(*ast.FunctionDecl).Span = sp(12, 400) },
			want:   "beyond content",
		},
		{
			name:   "overlap",
			mutate: func(p *ast.Program) { p.Body[1].(*ast.FunctionDecl).Span = sp(6, 26) },
			want:   "overlaps",
		},
		{
			name: "init outside item",
			mutate: func(p *ast.Program) {
				p.Body[0].(*ast.VariableDecl).Init = &ast.IntLit{Value: 1, Span: sp(5, 9)}
			},
			want: "outside",
		},
		{
			name: "binary operand outside parent",
			mutate: func(p *ast.Program) {
				p.Body[0].(*ast.VariableDecl).Init = &ast.Binary{
					LHS:  &ast.IntLit{Value: 1, Span: sp(2, 3)},
					Op:   ast.OpAdd,
					RHS:  &ast.IntLit{Value: 2, Span: sp(5, 6)},
					Span: sp(4, 6),
				}
			},
			want: "outside",
		},
		{
			name:   "wrong file",
			mutate: func(p *ast.Program) { p.Body[0].(*ast.VariableDecl).Span.File = 3 },
			want:   "file mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := good()
			tt.mutate(p)
			err := CheckSpanInvariants(p, sf)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}

	if err := CheckSpanInvariants(nil, sf); err == nil {
		t.Fatal("nil program must fail")
	}
}
