// Package driver runs the lint engine over a list of files and merges the
// per-file results, in input order, into one reporter.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"codex/internal/diag"
	"codex/internal/lint"
	"codex/internal/pipeline"
	"codex/internal/source"
	"codex/internal/trace"
)

// Options configure a run.
type Options struct {
	Engine *lint.Engine
	// Jobs > 1 lints files in parallel. Output order does not change.
	Jobs     int
	Cache    *Cache
	Progress pipeline.ProgressSink
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path        string
	Lines       int
	Diagnostics []diag.Diagnostic
	Cached      bool
	// Err is set when the file could not be read; nothing else is valid then.
	Err error
}

// Result is the outcome of a whole run.
type Result struct {
	Files   []FileResult
	Lines   int
	Checked int
	Failed  int
	Timings pipeline.Timings
}

// Diagnostics counts every diagnostic produced, accepted by the sink or not.
func (r *Result) Diagnostics() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Run lints paths and feeds diagnostics to rep in file order. Unreadable
// files are recorded in the result and do not stop the run. The returned
// error is only set when ctx is cancelled or the options are invalid.
func Run(ctx context.Context, paths []string, opts Options, rep diag.Reporter) (*Result, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("driver: no engine")
	}
	if rep == nil {
		rep = diag.NopReporter{}
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	var fingerprint Digest
	if opts.Cache != nil {
		fp, err := Fingerprint(opts.Engine.Options())
		if err != nil {
			return nil, err
		}
		fingerprint = fp
	}

	res := &Result{Files: make([]FileResult, len(paths))}
	fileSet := source.NewFileSet()
	files := make([]*source.File, len(paths))

	loadSpan := trace.Begin(tracer, trace.ScopePhase, "load", parent)
	loadStart := time.Now()
	for i, path := range paths {
		res.Files[i].Path = path
		notify(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			res.Files[i].Err = err
			notify(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err})
			trace.Point(tracer, trace.ScopeFile, "unreadable", path, loadSpan.ID())
			continue
		}
		files[i] = fileSet.Get(id)
	}
	res.Timings.Add(pipeline.StageLoad, time.Since(loadStart))
	loadSpan.WithExtra("files", strconv.Itoa(len(paths))).End("")

	lintSpan := trace.Begin(tracer, trace.ScopePhase, "lint", parent)
	lintStart := time.Now()
	one := func(i int) {
		if files[i] == nil {
			return
		}
		lintFile(tracer, lintSpan.ID(), opts, fingerprint, files[i], &res.Files[i])
	}

	jobs := opts.Jobs
	if jobs < 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs <= 1 || len(paths) < 2 {
		for i := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			one(i)
		}
	} else {
		// each goroutine writes its own index, no mutex needed
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(paths)))
		for i := range paths {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				one(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	res.Timings.Add(pipeline.StageLint, time.Since(lintStart))
	lintSpan.End("")

	reportStart := time.Now()
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil {
			res.Failed++
			notify(opts.Progress, pipeline.Event{File: fr.Path, Stage: pipeline.StageReport, Status: pipeline.StatusError, Err: fr.Err})
			continue
		}
		res.Checked++
		res.Lines += fr.Lines
		notify(opts.Progress, pipeline.Event{
			File:        fr.Path,
			Stage:       pipeline.StageReport,
			Status:      pipeline.StatusDone,
			Diagnostics: len(fr.Diagnostics),
		})
		for _, d := range fr.Diagnostics {
			rep.Report(d)
		}
	}
	res.Timings.Add(pipeline.StageReport, time.Since(reportStart))
	return res, nil
}

func lintFile(tracer trace.Tracer, parent uint64, opts Options, fingerprint Digest, f *source.File, out *FileResult) {
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+out.Path, parent)
	start := time.Now()
	notify(opts.Progress, pipeline.Event{File: out.Path, Stage: pipeline.StageLint, Status: pipeline.StatusWorking})

	var key Digest
	if opts.Cache != nil {
		key = Key(f.Hash, fingerprint)
		lines, diags, ok, err := opts.Cache.Get(key, out.Path)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
		if ok {
			out.Lines, out.Diagnostics, out.Cached = lines, diags, true
			span.WithExtra("lines", strconv.Itoa(lines)).
				WithExtra("diagnostics", strconv.Itoa(len(diags))).
				WithExtra("cached", "true").End("")
			notify(opts.Progress, pipeline.Event{
				File: out.Path, Stage: pipeline.StageLint, Status: pipeline.StatusCached,
				Elapsed: time.Since(start), Diagnostics: len(diags),
			})
			return
		}
	}

	var buf diag.SliceReporter
	stats := opts.Engine.Run(f, out.Path, &buf)
	out.Lines, out.Diagnostics = stats.Lines, buf.Items

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, stats.Lines, buf.Items); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
	}
	span.WithExtra("lines", strconv.Itoa(stats.Lines)).
		WithExtra("diagnostics", strconv.Itoa(len(buf.Items))).
		WithExtra("cached", "false").End("")
	notify(opts.Progress, pipeline.Event{
		File: out.Path, Stage: pipeline.StageLint, Status: pipeline.StatusDone,
		Elapsed: time.Since(start), Diagnostics: len(buf.Items),
	})
}

func notify(sink pipeline.ProgressSink, evt pipeline.Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
