package driver

import (
	"context"
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/trace"
)

// ExprName is the virtual file name used for ParseExpr input.
const ExprName = "<expr>"

type ExprResult struct {
	FileSet *source.FileSet
	// Expr is nil when the text did not parse.
	Expr ast.Expr
	Bag  *diag.Bag
}

// ParseExpr parses text as one standalone expression.
func ParseExpr(ctx context.Context, text string, opts Options) (*ExprResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "parse:"+ExprName, trace.ParentID(ctx))
	defer span.End("")

	fs := source.NewFileSet()
	id := fs.AddBuffer(ExprName, []byte(text))
	idx := opts.Timer.Begin("parse")
	defer opts.Timer.End(idx, ExprName)

	res := &ExprResult{FileSet: fs, Bag: diag.NewBag(opts.MaxDiagnostics)}
	expr, err := parser.ParseExpression(lexer.New(fs.Get(id)))
	if err != nil {
		d, ok := diag.FromError(err)
		if !ok {
			return nil, fmt.Errorf("parse expression: %w", err)
		}
		res.Bag.Add(d)
		return res, nil
	}
	res.Expr = expr
	return res, nil
}
