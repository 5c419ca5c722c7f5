package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/trace"
)

// TokenizeDirResult is one file of TokenizeDir. Result is nil when the
// file could not be read; Bag then holds the I/O diagnostic.
type TokenizeDirResult struct {
	Path   string
	Result *TokenizeResult
	Bag    *diag.Bag
}

// ParseDirResult is one file of ParseDir, see TokenizeDirResult.
type ParseDirResult struct {
	Path   string
	Result *ParseResult
	Bag    *diag.Bag
}

// ListSources returns every file under dir with the given extension,
// sorted for a deterministic order.
func ListSources(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// TokenizeDir tokenizes every source file under dir in parallel.
// Results follow ListSources order.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	fileSet, results, err := runDir(ctx, dir, "tokenize", opts,
		func(ctx context.Context, fset *source.FileSet, f *source.File) (TokenizeDirResult, error) {
			r := tokenizeFile(ctx, fset, f, opts)
			return TokenizeDirResult{Path: f.Path, Result: r, Bag: r.Bag}, nil
		},
		func(path string, bag *diag.Bag) TokenizeDirResult {
			return TokenizeDirResult{Path: path, Bag: bag}
		},
		func(r TokenizeDirResult) (int, bool) { return r.Bag.Len(), r.Result != nil && r.Result.Cached },
	)
	return fileSet, results, err
}

// ParseDir parses every source file under dir in parallel.
// Results follow ListSources order.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	fileSet, results, err := runDir(ctx, dir, "parse", opts,
		func(ctx context.Context, fset *source.FileSet, f *source.File) (ParseDirResult, error) {
			r, err := parseFile(ctx, fset, f, opts)
			if err != nil {
				return ParseDirResult{}, err
			}
			return ParseDirResult{Path: f.Path, Result: r, Bag: r.Bag}, nil
		},
		func(path string, bag *diag.Bag) ParseDirResult {
			return ParseDirResult{Path: path, Bag: bag}
		},
		func(r ParseDirResult) (int, bool) { return r.Bag.Len(), false },
	)
	return fileSet, results, err
}

// runDir loads all files up front (FileSet is not safe for concurrent Add)
// and then runs work on a bounded errgroup. Each goroutine writes only
// its own slot in results.
func runDir[R any](
	ctx context.Context,
	dir, stage string,
	opts Options,
	work func(context.Context, *source.FileSet, *source.File) (R, error),
	failed func(path string, bag *diag.Bag) R,
	summary func(R) (errs int, cached bool),
) (*source.FileSet, []R, error) {
	files, err := ListSources(dir, opts.extension())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeStage, stage, trace.ParentID(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	loadIdx := opts.Timer.Begin("load")
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
		opts.report(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressQueued})
	}
	opts.Timer.End(loadIdx, dir)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	stageIdx := opts.Timer.Begin(stage)
	defer opts.Timer.End(stageIdx, dir)

	results := make([]R, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.report(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressWorking})
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(IODiagnostic(path, loadErrs[i]))
				results[i] = failed(path, bag)
			} else {
				r, err := work(gctx, fileSet, fileSet.Get(ids[i]))
				if err != nil {
					return err
				}
				results[i] = r
			}
			errs, cached := summary(results[i])
			opts.report(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressDone, Errors: errs, Cached: cached})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
