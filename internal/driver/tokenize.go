package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

type TokenizeResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Directive string
	// Tokens ends with EOF. Failed fragments appear as token.Invalid.
	Tokens []token.Token
	Bag    *diag.Bag
	Cached bool
}

// Tokenize loads path and lexes it to EOF. Only I/O failures are returned
// as errors; lexical errors go to the Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := loadFile(fs, path, opts)
	if err != nil {
		return nil, err
	}
	idx := opts.Timer.Begin("tokenize")
	defer opts.Timer.End(idx, path)
	return tokenizeFile(ctx, fs, fs.Get(id), opts), nil
}

// TokenizeSource lexes an in-memory buffer registered under name.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	id := fs.AddBuffer(name, content)
	idx := opts.Timer.Begin("tokenize")
	defer opts.Timer.End(idx, name)
	return tokenizeFile(ctx, fs, fs.Get(id), opts)
}

func loadFile(fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	var id source.FileID
	err := opts.Timer.Measure("load", func() (err error) {
		id, err = fs.Load(path)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return id, nil
}

// newReporter: повторы одной и той же ошибки в файл не попадают
func newReporter(bag *diag.Bag) diag.Reporter {
	return diag.NewDedupReporter(diag.NewBagReporter(bag))
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "lex:"+file.Path, trace.ParentID(ctx))
	defer span.End("")

	res := &TokenizeResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}

	toks, errs, directive, hit, err := opts.Cache.Get(file)
	if err != nil {
		trace.Point(tr, trace.ScopeFile, "cache", err.Error(), span.ID())
	}
	if !hit {
		toks, errs, directive = lexAll(file)
		if err := opts.Cache.Put(file, toks, errs, directive); err != nil {
			trace.Point(tr, trace.ScopeFile, "cache", err.Error(), span.ID())
		}
	}
	rep := newReporter(res.Bag)
	for _, e := range errs {
		rep.Report(diag.FromLexError(e))
	}
	res.Tokens = toks
	res.Directive = directive
	res.Cached = hit
	span.WithExtra("tokens", strconv.Itoa(len(toks))).WithExtra("cached", strconv.FormatBool(hit))
	return res
}

// lexAll drains the lexer, keeping going after lexical errors.
func lexAll(file *source.File) ([]token.Token, []*lexer.Error, string) {
	lx := lexer.New(file)
	var (
		toks []token.Token
		errs []*lexer.Error
	)
	for {
		tok, err := lx.Next()
		var le *lexer.Error
		if errors.As(err, &le) {
			errs = append(errs, le)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, errs, lx.Directive()
}
