package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/source"
	"ember/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.em|directory|-]...",
	Short: "Parse ember sources and print their syntax trees",
	Long: `Parse analyzes each file (or every .em file in a directory) and prints the declarations it found.
A "-" argument reads source from standard input. With --expr it parses a single expression instead.`,
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().Bool("keep-going", false, "continue with the next declaration after a syntax error")
	parseCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	parseCmd.Flags().String("expr", "", "parse one expression and print it fully parenthesized")
}

// parsedFile is one parse outcome. program is nil when nothing usable was
// produced.
type parsedFile struct {
	path    string
	fs      *source.FileSet
	program *ast.Program
	bag     *diag.Bag
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("expr") {
		if len(args) > 0 {
			return errors.New("--expr takes no file arguments")
		}
		return runParseExpr(cmd)
	}

	files, err := collectParses(cmd, args, shouldUseTUI(mode))
	if err != nil {
		return err
	}

	failed := false
	for _, f := range files {
		if f.bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), f.bag, f.fs, prettyOpts())
		}
		failed = failed || f.bag.HasErrors()
	}
	if err := writePrograms(cmd.OutOrStdout(), files, format); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

// collectParses parses every input path. I/O failures become diagnostics so
// one unreadable file does not hide the others.
func collectParses(cmd *cobra.Command, args []string, withUI bool) ([]parsedFile, error) {
	opts, err := driverOptions(cmd)
	if err != nil {
		return nil, err
	}
	paths, err := inputPaths(args)
	if err != nil {
		return nil, err
	}

	var files []parsedFile
	for _, p := range paths {
		if p == stdinArg {
			content, err := readStdin(cmd)
			if err != nil {
				return nil, err
			}
			res, err := driver.ParseSource(cmd.Context(), stdinName, content, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, parsedFile{path: stdinName, fs: res.FileSet, program: res.Program, bag: res.Bag})
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			files = append(files, parsedFile{path: p, bag: ioBag(p, err)})
			continue
		}
		if !st.IsDir() {
			res, err := driver.Parse(cmd.Context(), p, opts)
			if err != nil {
				files = append(files, parsedFile{path: p, bag: ioBag(p, err)})
				continue
			}
			files = append(files, parsedFile{path: p, fs: res.FileSet, program: res.Program, bag: res.Bag})
			continue
		}

		fset, results, err := parseDir(cmd, p, opts, withUI)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		for _, r := range results {
			pf := parsedFile{path: r.Path, fs: fset, bag: r.Bag}
			if r.Result != nil {
				pf.program = r.Result.Program
			}
			files = append(files, pf)
		}
	}
	return files, nil
}

func runParseExpr(cmd *cobra.Command) error {
	text, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := driver.ParseExpr(cmd.Context(), text, opts)
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, prettyOpts())
		return errReported
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Expr.String())
	return err
}

func parseDir(cmd *cobra.Command, dir string, opts driver.Options, withUI bool) (*source.FileSet, []driver.ParseDirResult, error) {
	if !withUI {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}
	ext := opts.Extension
	if ext == "" {
		ext = driver.DefaultExtension
	}
	names, err := driver.ListSources(dir, ext)
	if err != nil || len(names) == 0 {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}

	events := make(chan driver.ProgressEvent, 64)
	opts.Progress = func(ev driver.ProgressEvent) { events <- ev }

	type outcome struct {
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		fset, results, err := driver.ParseDir(cmd.Context(), dir, opts)
		close(events)
		done <- outcome{fset, results, err}
	}()

	if err := ui.Run(cmd.ErrOrStderr(), "parsing "+dir, names, events); err != nil {
		// UI упал: дочитываем события, чтобы воркеры не встали
		for range events {
		}
	}
	o := <-done
	return o.fs, o.results, o.err
}

func writePrograms(w io.Writer, files []parsedFile, format string) error {
	switch format {
	case "json", "yaml":
		payload := make([]diagfmt.ProgramOutput, 0, len(files))
		for _, f := range files {
			if f.program != nil {
				payload = append(payload, diagfmt.BuildASTOutput(f.program, f.path))
			}
		}
		if len(files) == 1 && len(payload) == 1 {
			if format == "json" {
				return diagfmt.FormatASTJSON(w, files[0].program, files[0].path)
			}
			return diagfmt.FormatASTYAML(w, files[0].program, files[0].path)
		}
		if format == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	}

	printed := 0
	for _, f := range files {
		if f.program == nil {
			continue
		}
		if len(files) > 1 && !app.quiet {
			if printed > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", f.path)
		}
		printed++
		var err error
		if format == "tree" {
			err = diagfmt.FormatASTTree(w, f.program, f.path)
		} else {
			err = diagfmt.FormatASTPretty(w, f.program)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// unwrapPathError drops driver wrapping so the message reads
// "open x.em: no such file or directory".
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe
	}
	return err
}
