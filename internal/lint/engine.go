// Package lint runs the per-line checkers over a file in a fixed order.
package lint

import (
	"strings"

	"codex/internal/config"
	"codex/internal/declorder"
	"codex/internal/diag"
	"codex/internal/pairing"
	"codex/internal/rules"
	"codex/internal/scan"
	"codex/internal/source"
)

// Policy decides what happens after a checker reports for a line.
type Policy uint8

const (
	// StopAtFirst skips the remaining checkers of a line once one reported.
	StopAtFirst Policy = iota
	// ReportAll runs every checker on every line.
	ReportAll
)

func (p Policy) String() string {
	if p == ReportAll {
		return "all"
	}
	return "first"
}

// ParsePolicy accepts "first" and "all".
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "first", "":
		return StopAtFirst, true
	case "all":
		return ReportAll, true
	}
	return StopAtFirst, false
}

const unterminatedComment = "File ends with an unterminated '/*' comment."

// Options configure an Engine.
type Options struct {
	Modes      config.Resolved
	Tables     *rules.Tables
	LineLength int
	Pairing    pairing.Options
	Policy     Policy
	// NoMarkers disables the $CODEX: echo; verification runs use it.
	NoMarkers bool
}

// step is one dispatcher stage. observe, when set, keeps tracker state in
// sync for lines where the stage is skipped.
type step struct {
	name    string
	check   func(st *State, l rules.Line) []diag.Finding
	observe func(st *State, l rules.Line)
}

// Engine holds the configured pipeline. It has no per-file state and may be
// shared by goroutines, each with its own State.
type Engine struct {
	opts  Options
	steps []step
}

// New builds the pipeline for opts.
func New(opts Options) *Engine {
	if opts.Tables == nil {
		opts.Tables = rules.Default()
	}
	e := &Engine{opts: opts}
	e.steps = e.build()
	return e
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// StepNames lists the active stages in dispatch order.
func (e *Engine) StepNames() []string {
	out := make([]string, 0, len(e.steps))
	for _, s := range e.steps {
		out = append(out, s.name)
	}
	return out
}

func checker(c rules.Checker) step {
	return step{name: c.Name(), check: func(_ *State, l rules.Line) []diag.Finding { return c.Check(l) }}
}

func (e *Engine) build() []step {
	m := e.opts.Modes
	t := e.opts.Tables
	var steps []step

	if !e.opts.NoMarkers {
		steps = append(steps, checker(rules.Marker()))
	}
	if m.C89 {
		steps = append(steps, checker(rules.Legacy(t)))
	}
	if m.C99 {
		steps = append(steps, checker(rules.Modern(t)))
	}
	if m.CompilerCompat {
		if m.NDK {
			steps = append(steps, checker(rules.Keywords(t, rules.VendorNDK)))
		}
		if m.SASC {
			steps = append(steps, checker(rules.Keywords(t, rules.VendorSASC)))
		}
		if m.VBCC {
			steps = append(steps, checker(rules.Keywords(t, rules.VendorVBCC)))
		}
		if m.DICE {
			steps = append(steps, checker(rules.Keywords(t, rules.VendorDICE)))
		}
	}
	if m.Amiga {
		steps = append(steps, checker(rules.Platform(t, rules.PlatformOptions{PascalCase: m.PascalCase})))
	}
	if m.MemSafe {
		steps = append(steps, checker(rules.MemorySafety(t)))
	}

	steps = append(steps, checker(rules.MagicNumber(declorder.New(nil).IsKeyword)))

	steps = append(steps, step{
		name:    "pairing",
		check:   func(st *State, l rules.Line) []diag.Finding { return st.pair.Check(rules.MaskLiterals(l.Clean), l.Number) },
		observe: func(st *State, l rules.Line) { st.pair.Observe(rules.MaskLiterals(l.Clean), l.Number) },
	})

	if m.C89 {
		steps = append(steps, step{
			name: "decl-order",
			check: func(st *State, l rules.Line) []diag.Finding {
				if f, ok := st.decl.Check(l.Clean); ok {
					return []diag.Finding{f}
				}
				return nil
			},
			observe: func(st *State, l rules.Line) { st.decl.Observe(l.Clean) },
		})
	}
	if e.opts.LineLength > 0 {
		steps = append(steps, checker(rules.LineLength(e.opts.LineLength)))
	}
	return steps
}

// lineComments reports whether "//" is flagged: the legacy standard is on
// and the compiler is not SAS/C, which accepts them.
func (e *Engine) lineComments() bool {
	return e.opts.Modes.C89 && !e.opts.Modes.SASC
}

// State is the cross-line context of one file.
type State struct {
	scan     scan.Scanner
	decl     *declorder.Tracker
	pair     *pairing.Tracker
	lastLine int
}

// NewState returns fresh per-file state.
func (e *Engine) NewState() *State {
	return &State{
		decl: declorder.New(nil),
		pair: pairing.New(e.opts.Pairing),
	}
}

// Depth exposes the brace depth for tests and tracing.
func (st *State) Depth() int { return st.decl.Depth() }

// InComment reports whether a block comment is open.
func (st *State) InComment() bool { return st.scan.InComment() }

// ProcessLine scans one raw line and runs the pipeline over it. It returns
// the number of diagnostics reported.
func (e *Engine) ProcessLine(st *State, path string, number int, raw string, r diag.Reporter) int {
	st.lastLine = number
	res := st.scan.Scan(raw)
	n := 0
	emit := func(fs []diag.Finding) bool {
		for _, f := range fs {
			r.Report(f.Bind(path, number, raw))
			n++
		}
		return len(fs) > 0
	}

	reported := false
	if res.LineComment > 0 && e.lineComments() {
		reported = emit(rules.LineComment().Check(rules.Line{Number: number, Raw: raw, CommentCol: res.LineComment}))
	}
	if res.Blank() {
		return n
	}

	line := rules.Line{Number: number, Raw: raw, Clean: res.Clean, CommentCol: res.LineComment}
	for _, s := range e.steps {
		if reported && e.opts.Policy == StopAtFirst {
			if s.observe != nil {
				s.observe(st, line)
			}
			continue
		}
		if emit(s.check(st, line)) {
			reported = true
		}
	}
	st.decl.UpdateDepth(res.Clean)
	return n
}

// Finish runs the end-of-file checks.
func (e *Engine) Finish(st *State, path string, r diag.Reporter) int {
	last := max(st.lastLine, 1)
	n := 0
	if st.scan.InComment() {
		r.Report(diag.Finding{
			Code:    diag.ComUnterminatedBlock,
			Line:    last,
			Column:  1,
			Message: unterminatedComment,
		}.Bind(path, last, ""))
		n++
	}
	for _, f := range st.pair.Finalize(last) {
		r.Report(f.Bind(path, last, ""))
		n++
	}
	return n
}

// Stats summarizes one file.
type Stats struct {
	Lines       int
	Diagnostics int
}

// Run lints a whole file with fresh state. path is the name diagnostics carry.
func (e *Engine) Run(f *source.File, path string, r diag.Reporter) Stats {
	st := e.NewState()
	var stats Stats
	for num, text := range f.Lines() {
		stats.Lines++
		stats.Diagnostics += e.ProcessLine(st, path, int(num), strings.TrimRight(text, "\r"), r)
	}
	stats.Diagnostics += e.Finish(st, path, r)
	return stats
}
