// Package driver wires source loading, the lexer and the parser together
// and turns their errors into diagnostics.
package driver

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/diag"
	"ember/internal/observ"
	"ember/internal/source"
)

// DefaultExtension is the source file suffix picked up by the *Dir functions.
const DefaultExtension = ".em"

// Options configure one driver run.
type Options struct {
	// MaxDiagnostics bounds each file's Bag; 0 means unlimited.
	MaxDiagnostics int
	// KeepGoing continues with the next declaration after a syntax error.
	KeepGoing bool
	// Jobs limits parallel workers in the *Dir functions; 0 means GOMAXPROCS.
	Jobs int
	// Extension filters files in the *Dir functions. Empty means DefaultExtension.
	Extension string
	// Cache, when set, is consulted before lexing.
	Cache *TokenCache
	// Progress receives per-file events from the *Dir functions.
	Progress ProgressFunc
	// Timer, when set, records load/tokenize/parse phases.
	Timer *observ.Timer
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

func (o Options) maxErrors() (uint, error) {
	if o.MaxDiagnostics <= 0 {
		return 0, nil
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("max diagnostics: %w", err)
	}
	return n, nil
}

// IODiagnostic reports a file that could not be read. It has no span,
// only the path in Loc.
func IODiagnostic(path string, err error) diag.Diagnostic {
	d := diag.NewError(diag.IOLoadFileError, source.Span{File: source.NoFileID}, err.Error())
	d.Loc = source.Location{File: path}
	return d
}
