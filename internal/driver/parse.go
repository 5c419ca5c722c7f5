package driver

import (
	"context"
	"strconv"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Program is nil when parsing failed without KeepGoing.
	// With KeepGoing it holds every declaration that parsed cleanly.
	Program *ast.Program
	Bag     *diag.Bag
}

// Parse loads and parses path. Only I/O failures are returned as errors.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := loadFile(fs, path, opts)
	if err != nil {
		return nil, err
	}
	idx := opts.Timer.Begin("parse")
	defer opts.Timer.End(idx, path)
	return parseFile(ctx, fs, fs.Get(id), opts)
}

// ParseSource parses an in-memory buffer registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	id := fs.AddBuffer(name, content)
	idx := opts.Timer.Begin("parse")
	defer opts.Timer.End(idx, name)
	return parseFile(ctx, fs, fs.Get(id), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "parse:"+file.Path, trace.ParentID(ctx))
	defer span.End("")

	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	result := parser.ParseFile(lexer.New(file), parser.Options{
		KeepGoing: opts.KeepGoing,
		MaxErrors: maxErrors,
	})
	rep := newReporter(res.Bag)
	for _, e := range result.Errors {
		rep.Report(diag.FromParseError(e))
	}
	if len(result.Errors) == 0 || opts.KeepGoing {
		res.Program = result.Program
	}

	if result.Program != nil && tr.Level().ShouldEmit(trace.ScopeItem) {
		for _, item := range result.Program.Body {
			trace.Point(tr, trace.ScopeItem, "item", item.String(), span.ID())
		}
	}
	span.WithExtra("errors", strconv.Itoa(len(result.Errors)))
	return res, nil
}
