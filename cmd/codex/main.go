package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codex/internal/version"
)

// Process exit statuses. A run with unreadable files fails even when it
// also found issues.
const (
	exitOK   = 0
	exitWarn = 5
	exitFail = 20
)

// exitError carries a status out of RunE without printing anything.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Amiga C style and portability linter",
	Long: `codex checks C sources line by line for Amiga platform conventions,
C89/C99 compliance, compiler-specific keywords and unsafe library calls.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorFlag(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			_ = stopProfiling()
			return err
		}
		runCleanup = func() {
			cleanup()
			if err := stopProfiling(); err != nil {
				fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
			}
		}
		return nil
	},
}

// runCleanup flushes the tracer and profiles after the command finished,
// whatever it returned.
var runCleanup = func() {}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress notices and the summary")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0 = from config)")
	rootCmd.PersistentFlags().String("config", "", "path to codex.toml (default: searched upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	rootCmd.Version = version.Version
	os.Exit(execute(rootCmd))
}

// execute runs the command tree and flushes tracing whatever the outcome.
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	runCleanup()
	runCleanup = func() {}
	return exitStatus(cmd, err)
}

// exitStatus maps a command error to the process status, printing
// anything that is not a plain exit request.
func exitStatus(cmd *cobra.Command, err error) int {
	if err == nil {
		return exitOK
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return exitFail
}

// runStatus folds the run outcome into an exit status.
func runStatus(failed, issues int) int {
	switch {
	case failed > 0:
		return exitFail
	case issues > 0:
		return exitWarn
	}
	return exitOK
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
