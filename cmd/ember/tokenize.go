package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/source"
	"ember/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.em|directory|-]...",
	Short: "Tokenize ember source files",
	Long:  `Tokenize prints the token stream of each file. Without arguments it tokenizes the project's source dirs.`,
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams from the on-disk cache")
	tokenizeCmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/ember)")
	tokenizeCmd.Flags().Bool("clear-cache", false, "drop cached token streams before tokenizing (implies --cache)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
}

type tokenizedFile struct {
	path   string
	fs     *source.FileSet
	tokens []token.Token
	bag    *diag.Bag
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Cache, err = openCache(cmd); err != nil {
		return err
	}
	paths, err := inputPaths(args)
	if err != nil {
		return err
	}

	var files []tokenizedFile
	for _, p := range paths {
		if p == stdinArg {
			content, err := readStdin(cmd)
			if err != nil {
				return err
			}
			res := driver.TokenizeSource(cmd.Context(), stdinName, content, opts)
			files = append(files, tokenizedFile{path: stdinName, fs: res.FileSet, tokens: res.Tokens, bag: res.Bag})
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			files = append(files, tokenizedFile{path: p, bag: ioBag(p, err)})
			continue
		}
		if !st.IsDir() {
			res, err := driver.Tokenize(cmd.Context(), p, opts)
			if err != nil {
				files = append(files, tokenizedFile{path: p, bag: ioBag(p, err)})
				continue
			}
			files = append(files, tokenizedFile{path: p, fs: res.FileSet, tokens: res.Tokens, bag: res.Bag})
			continue
		}
		fset, results, err := driver.TokenizeDir(cmd.Context(), p, opts)
		if err != nil {
			return fmt.Errorf("tokenize %s: %w", p, err)
		}
		for _, r := range results {
			tf := tokenizedFile{path: r.Path, fs: fset, bag: r.Bag}
			if r.Result != nil {
				tf.tokens = r.Result.Tokens
			}
			files = append(files, tf)
		}
	}

	failed := false
	for _, f := range files {
		if f.bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), f.bag, f.fs, prettyOpts())
		}
		failed = failed || f.bag.HasErrors()
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		type fileTokens struct {
			Path   string                `json:"path"`
			Tokens []diagfmt.TokenOutput `json:"tokens"`
		}
		payload := make([]fileTokens, 0, len(files))
		for _, f := range files {
			payload = append(payload, fileTokens{Path: f.path, Tokens: diagfmt.BuildTokensOutput(f.tokens)})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		for i, f := range files {
			if f.tokens == nil {
				continue
			}
			if len(files) > 1 && !app.quiet {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", f.path)
			}
			if err := diagfmt.FormatTokensPretty(out, f.tokens, f.fs); err != nil {
				return err
			}
		}
	}

	if opts.Cache != nil && !app.quiet {
		hits, misses := opts.Cache.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "cache: %d hit(s), %d miss(es) in %s\n", hits, misses, opts.Cache.Dir())
	}
	if failed {
		return errReported
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.TokenCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if !enabled && !clearCache && dir == "" {
		return nil, nil
	}
	if dir == "" {
		if dir, err = driver.DefaultCacheDir(); err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
	}
	cache, err := driver.OpenTokenCache(dir)
	if err != nil {
		return nil, err
	}
	if clearCache {
		if err := cache.Clear(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	return cache, nil
}

// ioBag wraps a single I/O failure for printing.
func ioBag(path string, err error) *diag.Bag {
	bag := diag.NewBag(1)
	bag.Add(driver.IODiagnostic(path, unwrapPathError(err)))
	return bag
}
