package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"ember/internal/ast"
	"ember/internal/source"
)

// ASTNodeOutput: сериализуемое представление узла AST для json/yaml.
type ASTNodeOutput struct {
	Kind     string           `json:"kind" yaml:"kind"`
	Name     string           `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string           `json:"type,omitempty" yaml:"type,omitempty"`
	Value    string           `json:"value,omitempty" yaml:"value,omitempty"`
	Op       string           `json:"op,omitempty" yaml:"op,omitempty"`
	Const    bool             `json:"const,omitempty" yaml:"const,omitempty"`
	Static   bool             `json:"static,omitempty" yaml:"static,omitempty"`
	Span     source.Span      `json:"span" yaml:"span"`
	Location *source.Location `json:"location,omitempty" yaml:"location,omitempty"`
	Children []*ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// ProgramOutput is the root of a serialized AST.
type ProgramOutput struct {
	File      string           `json:"file" yaml:"file"`
	Directive string           `json:"directive,omitempty" yaml:"directive,omitempty"`
	Items     []*ASTNodeOutput `json:"items" yaml:"items"`
}

// BuildASTOutput converts a program into its serializable form.
func BuildASTOutput(prog *ast.Program, path string) ProgramOutput {
	out := ProgramOutput{
		File:      path,
		Directive: prog.Directive,
		Items:     make([]*ASTNodeOutput, 0, len(prog.Body)),
	}
	for _, n := range prog.Body {
		out.Items = append(out.Items, buildNode(n))
	}
	return out
}

func buildNode(n ast.Node) *ASTNodeOutput {
	switch v := n.(type) {
	case *ast.VariableDecl:
		loc := v.Loc
		node := &ASTNodeOutput{
			Kind:     "VariableDecl",
			Name:     v.Ident,
			Type:     v.TypeName(),
			Const:    v.IsConst,
			Static:   v.IsStatic,
			Value:    v.InitText(),
			Span:     v.Span,
			Location: &loc,
		}
		if v.Init != nil {
			node.Children = append(node.Children, buildNode(v.Init))
		}
		return node
	case *ast.FunctionDecl:
		loc := v.Loc
		node := &ASTNodeOutput{
			Kind:     "FunctionDecl",
			Name:     v.Ident,
			Type:     v.ReturnType.Name,
			Span:     v.Span,
			Location: &loc,
		}
		for _, a := range v.Args {
			node.Children = append(node.Children, &ASTNodeOutput{
				Kind: "Arg",
				Name: a.Ident,
				Type: a.Kind.Name,
				Span: a.Span,
			})
		}
		for _, st := range v.Body {
			node.Children = append(node.Children, buildNode(st))
		}
		return node
	case *ast.Ident:
		return &ASTNodeOutput{Kind: "Ident", Name: v.Name, Span: v.Span}
	case *ast.IntLit:
		return &ASTNodeOutput{Kind: "IntLit", Value: strconv.FormatUint(v.Value, 10), Span: v.Span}
	case *ast.FloatLit:
		return &ASTNodeOutput{Kind: "FloatLit", Value: v.String(), Span: v.Span}
	case *ast.StringLit:
		return &ASTNodeOutput{Kind: "StringLit", Value: v.Value, Span: v.Span}
	case *ast.CharLit:
		return &ASTNodeOutput{Kind: "CharLit", Value: v.Value, Span: v.Span}
	case *ast.Unary:
		return &ASTNodeOutput{
			Kind:     "Unary",
			Op:       v.Op.String(),
			Span:     v.Span,
			Children: []*ASTNodeOutput{buildNode(v.X)},
		}
	case *ast.Binary:
		return &ASTNodeOutput{
			Kind:     "Binary",
			Op:       v.Op.String(),
			Span:     v.Span,
			Children: []*ASTNodeOutput{buildNode(v.LHS), buildNode(v.RHS)},
		}
	default:
		// узел, о котором формат ещё не знает
		return &ASTNodeOutput{Kind: fmt.Sprintf("%T", n), Value: n.String(), Span: n.NodeSpan()}
	}
}

// FormatASTPretty печатает программу в исходном синтаксисе
// (выражения полностью в скобках).
func FormatASTPretty(w io.Writer, prog *ast.Program) error {
	_, err := io.WriteString(w, prog.String())
	return err
}

// FormatASTJSON выводит AST в JSON формате
func FormatASTJSON(w io.Writer, prog *ast.Program, path string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(prog, path))
}

// FormatASTYAML выводит AST в YAML формате
func FormatASTYAML(w io.Writer, prog *ast.Program, path string) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildASTOutput(prog, path)); err != nil {
		return err
	}
	return encoder.Close()
}
