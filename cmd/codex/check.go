package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codex/internal/diag"
	"codex/internal/diagfmt"
	"codex/internal/driver"
	"codex/internal/lint"
	"codex/internal/observ"
	"codex/internal/pipeline"
	"codex/internal/trace"
	"codex/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|dir>...",
	Short: "Lint C sources",
	Long: `Lint C sources line by line. Directories are searched for .c and .h files.
Exit status is 0 when no issues were found, 5 when issues were found and 20
when a file could not be read or the arguments were invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addLintFlags(checkCmd)
	checkCmd.Flags().Int("jobs", 1, "files linted in parallel (-1 = one per CPU)")
	checkCmd.Flags().Bool("cache", false, "reuse results for unchanged files")
	checkCmd.Flags().String("cache-dir", "", "cache directory (implies --cache)")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().String("path-mode", "as-given", "path display (as-given|absolute|relative|basename)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	timer := observ.NewTimer()
	phase := timer.Begin("settings")
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	timer.End(phase, "")

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	stdout := cmd.OutOrStdout()
	console := stdout
	if s.format.Machine() {
		console = cmd.ErrOrStderr()
	}
	if !s.quiet {
		for _, n := range s.notices {
			fmt.Fprintln(console, n.String())
		}
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}

	opts := driver.Options{Engine: lint.New(s.engineOptions(false)), Jobs: jobs}
	if useCache || cacheDir != "" {
		if opts.Cache, err = driver.OpenCache(cacheDir); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runSpan := trace.Begin(trace.FromContext(ctx), trace.ScopeRun, "check", 0)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: runSpan.ID()})

	useUI := shouldUseTUI(mode, len(paths))
	// the progress UI owns the terminal while it runs; console lines wait
	var held bytes.Buffer
	lines := console
	if useUI {
		lines = &held
	}

	bag := diag.NewBag(s.maxDiagnostics)
	rep := &diag.BagReporter{Bag: bag, OnNotice: func(msg string) { fmt.Fprintln(lines, msg) }}

	phase = timer.Begin("run")
	var res *driver.Result
	if useUI {
		res, err = runCheckWithUI(ctx, "codex check", paths, opts, rep, consoleSink(lines))
	} else {
		opts.Progress = consoleSink(lines)
		res, err = driver.Run(ctx, paths, opts, rep)
	}
	timer.End(phase, fmt.Sprintf("%d files", len(paths)))
	if err != nil {
		runSpan.End(err.Error())
		return err
	}
	if useUI {
		if _, err := held.WriteTo(console); err != nil {
			return err
		}
	}
	runSpan.WithExtra("files", fmt.Sprint(res.Checked)).
		WithExtra("diagnostics", fmt.Sprint(bag.Len())).End("")

	phase = timer.Begin("report")
	fmtOpts := diagfmt.Opts{
		Color:    s.format == diagfmt.FormatPretty && !color.NoColor,
		PathMode: pathMode,
		Quiet:    s.quiet,
	}
	if fmtOpts.BaseDir, err = os.Getwd(); err != nil {
		return err
	}
	if err := writeReport(stdout, s, res, bag, fmtOpts); err != nil {
		return err
	}
	timer.End(phase, "")

	if showTimings {
		errOut := cmd.ErrOrStderr()
		printStageTimings(errOut, res.Timings)
		fmt.Fprint(errOut, timer.Summary())
	}

	if code := runStatus(res.Failed, bag.Len()); code != exitOK {
		return exitError{code: code}
	}
	return nil
}

// consoleSink prints the per-file lines in input order. The driver reports
// files one by one after linting, so diagnostics and overflow notices land
// between the right "Analyzing" lines.
func consoleSink(w io.Writer) pipeline.ProgressSink {
	return pipeline.SinkFunc(func(evt pipeline.Event) {
		if evt.Stage != pipeline.StageReport {
			return
		}
		if evt.Status == pipeline.StatusError {
			fmt.Fprintf(w, "Error: Cannot open file '%s'\n", evt.File)
			return
		}
		fmt.Fprintf(w, "Analyzing: %s\n", evt.File)
	})
}

func writeReport(w io.Writer, s *lintSettings, res *driver.Result, bag *diag.Bag, opts diagfmt.Opts) error {
	items := bag.Items()
	switch s.format {
	case diagfmt.FormatJSON:
		summary := &diagfmt.SummaryJSON{
			Files:   res.Checked,
			Lines:   res.Lines,
			Modes:   s.modes.ActiveNames(),
			Dropped: bag.Dropped(),
		}
		for _, f := range res.Files {
			if f.Err != nil {
				summary.Failed = append(summary.Failed, f.Path)
			}
		}
		return diagfmt.JSON(w, items, summary, opts)
	case diagfmt.FormatSARIF:
		meta := diagfmt.RunMeta{ToolName: "codex", ToolVersion: version.Version, InvocationArgs: os.Args[1:]}
		return diagfmt.Sarif(w, items, meta, opts)
	}

	if !s.quiet {
		err := diagfmt.WriteSummary(w, diagfmt.Summary{
			Files:  res.Checked,
			Lines:  res.Lines,
			Issues: bag.Len(),
			Modes:  s.modes.Summary(),
		})
		if err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return nil
	}
	if s.format == diagfmt.FormatPretty {
		if !s.quiet {
			fmt.Fprintln(w, diagfmt.ReportHeader)
		}
		return diagfmt.Pretty(w, items, opts)
	}
	return diagfmt.Text(w, items, opts)
}
