package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/observ"
	"ember/internal/prof"
	"ember/internal/project"
	"ember/internal/source"
)

// skipManifest is set on commands that must work outside a project.
const skipManifest = "ember/skip-manifest"

// appState lives for one invocation.
type appState struct {
	color    bool
	quiet    bool
	manifest *project.Manifest
	timer    *observ.Timer
	profile  *prof.Session
	cleanup  func()
}

var app = &appState{cleanup: func() {}}

func setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag)
	if err != nil {
		return err
	}
	app.color = useColor
	color.NoColor = !useColor

	if app.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		app.timer = observ.NewTimer()
	}

	if err := setupProfiling(pf); err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	app.cleanup = cleanup

	if cmd.Annotations[skipManifest] == "" {
		if err := loadManifest(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	return nil
}

func teardown(cmd *cobra.Command) error {
	app.cleanup()
	app.cleanup = func() {}

	var errs []error
	if app.profile != nil {
		errs = append(errs, app.profile.Stop())
		app.profile = nil
	}
	if app.timer != nil {
		t := app.timer
		app.timer = nil
		errs = append(errs, t.WriteSummary(cmd.ErrOrStderr()))
	}
	return errors.Join(errs...)
}

func setupProfiling(pf *pflag.FlagSet) error {
	var cfg prof.Config
	var err error
	if cfg.CPU, err = pf.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = pf.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	app.profile = session
	return nil
}

func resolveColor(flag string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		_, noColor := os.LookupEnv("NO_COLOR")
		return !noColor && isTerminal(os.Stderr), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flag)
	}
}

// loadManifest looks for ember.toml above the working directory. A broken
// manifest is reported like any other diagnostic.
func loadManifest(w io.Writer) error {
	path, ok, err := project.FindManifest(".")
	if err != nil || !ok {
		return err
	}
	m, err := project.Load(path)
	if err != nil {
		msg := strings.TrimPrefix(err.Error(), path+": ")
		d := diag.NewError(diag.ProjManifestInvalid, source.Span{File: source.NoFileID}, msg)
		d.Loc = source.Location{File: path}
		bag := diag.NewBag(1)
		bag.Add(d)
		diagfmt.Pretty(w, bag, nil, diagfmt.PrettyOpts{Color: app.color})
		return errReported
	}
	app.manifest = m
	return nil
}

// driverOptions merges manifest defaults with flags that were set explicitly.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{Timer: app.timer, MaxDiagnostics: 100}
	if m := app.manifest; m != nil {
		opts.MaxDiagnostics = m.Parse.MaxDiagnostics
		opts.KeepGoing = m.Parse.KeepGoing
		opts.Jobs = m.Parse.Jobs
		opts.Extension = m.Parse.Extension
	}

	pf := cmd.Root().PersistentFlags()
	if pf.Changed("max-diagnostics") || app.manifest == nil {
		n, err := pf.GetInt("max-diagnostics")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n < 0 {
			return opts, errors.New("--max-diagnostics must be >= 0")
		}
		opts.MaxDiagnostics = n
	}
	if f := cmd.Flags().Lookup("keep-going"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("keep-going")
		if err != nil {
			return opts, err
		}
		opts.KeepGoing = v
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		v, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, err
		}
		opts.Jobs = v
	}
	return opts, nil
}

// inputPaths returns args, or the manifest's source dirs when args is empty.
func inputPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if app.manifest == nil {
		return nil, errors.New("no input: pass a file or directory, or run inside a project with " + project.ManifestName)
	}
	return app.manifest.SourceDirs(), nil
}

const (
	// stdinArg among file arguments means standard input.
	stdinArg  = "-"
	stdinName = "<stdin>"
)

func readStdin(cmd *cobra.Command) ([]byte, error) {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, nil
}

func prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: app.color, Context: 2, ShowNotes: true}
}
