package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codex/internal/diag"
	"codex/internal/diagfmt"
	"codex/internal/directive"
	"codex/internal/driver"
	"codex/internal/lint"
	"codex/internal/source"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] <file|dir>...",
	Short: "Check that annotated fixtures produce the expected diagnostics",
	Long: `verify reads $CODEX: markers from the sources and checks that every marked
line carries a diagnostic. A marker on a code line targets that line; a marker
alone on a line targets the next code line. A marker text starting with a
diagnostic code, like "$CODEX: STY7001 magic", must match that code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	addLintFlags(verifyCmd)
	verifyCmd.Flags().Bool("strict", false, "also fail on diagnostics for unmarked lines")
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}

	registry := directive.NewRegistry()
	fs := source.NewFileSet()
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			// the driver reports it below
			continue
		}
		registry.Add(directive.Collect(fs.Get(id), path)...)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var rep diag.SliceReporter
	res, err := driver.Run(ctx, paths, driver.Options{Engine: lint.New(s.engineOptions(true))}, &rep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range res.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "Error: Cannot open file '%s'\n", f.Path)
		}
	}
	report := directive.Verify(registry.All(), rep.Items, strict)
	for _, e := range report.Missing {
		fmt.Fprintf(out, "%s:%d: missing diagnostic for marker %q (line %d)\n", e.File, e.Target, e.Text, e.MarkerLine)
	}
	for _, e := range report.Orphans {
		fmt.Fprintf(out, "%s:%d: marker %q has no code line to check\n", e.File, e.MarkerLine, e.Text)
	}
	if len(report.Unexpected) > 0 {
		fmt.Fprintln(out, "unexpected diagnostics:")
		if err := diagfmt.Text(out, report.Unexpected, diagfmt.Opts{Quiet: true}); err != nil {
			return err
		}
	}
	if !s.quiet {
		fmt.Fprintf(out, "%d of %d markers satisfied in %d files.\n",
			len(report.Satisfied), registry.Len(), res.Checked)
	}

	if res.Failed > 0 || !report.OK() {
		return exitError{code: exitFail}
	}
	return nil
}
