package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/version"
)

// errReported means diagnostics were already printed; main only sets the
// exit code.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "ember",
	Short:         "Front end for the ember language",
	Long:          `ember tokenizes and parses .em sources and reports diagnostics`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|stage|file|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 1024, "events kept in ring mode")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
}

// shutdownSignals отменяют контекст команды
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// PostRun не вызывается, если RunE упал
		_ = teardown(rootCmd)
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
