package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.em|directory|-]...",
	Short: "Report diagnostics for ember sources",
	Long:  `Diag parses the inputs and prints only the diagnostics. The exit code is 1 when any error was reported.`,
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("keep-going", false, "continue with the next declaration after a syntax error")
	diagCmd.Flags().Bool("notes", false, "include notes in short and json output")
}

func runDiag(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}

	files, err := collectParses(cmd, args, false)
	if err != nil {
		return err
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), files, format, notes); err != nil {
		return err
	}
	for _, f := range files {
		if f.bag.HasErrors() {
			return errReported
		}
	}
	return nil
}

func writeDiagnostics(w io.Writer, files []parsedFile, format string, notes bool) error {
	for _, f := range files {
		f.bag.Sort()
		f.bag.Dedup()
	}
	switch format {
	case "json":
		out := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
		opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: notes}
		for _, f := range files {
			part := diagfmt.BuildDiagnosticsOutput(f.bag, f.fs, opts)
			out.Diagnostics = append(out.Diagnostics, part.Diagnostics...)
		}
		out.Count = len(out.Diagnostics)
		return writeJSON(w, out)
	case "short":
		for _, f := range files {
			text := diag.FormatShortDiagnostics(f.bag.Items(), f.fs, notes)
			if text == "" {
				continue
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	default:
		total := 0
		for _, f := range files {
			if f.bag.Len() > 0 {
				diagfmt.Pretty(w, f.bag, f.fs, prettyOpts())
				total += f.bag.Len()
			}
		}
		if !app.quiet {
			_, err := fmt.Fprintf(w, "%d file(s) checked, %d diagnostic(s)\n", len(files), total)
			return err
		}
		return nil
	}
}
