// Package pairing validates matched disable/enable critical-section calls
// such as exec's Forbid()/Permit(). A disable must be followed by its enable
// within a short span, never nest, and balance by end of file.
package pairing

import (
	"fmt"
	"sort"
	"strings"

	"codex/internal/diag"
)

const (
	DefaultDisable = "Forbid"
	DefaultEnable  = "Permit"
	// DefaultMaxSpan is the longest distance in lines between the calls.
	DefaultMaxSpan = 5
)

// Options name the call pair and the allowed span.
type Options struct {
	Disable string
	Enable  string
	MaxSpan int
}

func (o Options) withDefaults() Options {
	if o.Disable == "" {
		o.Disable = DefaultDisable
	}
	if o.Enable == "" {
		o.Enable = DefaultEnable
	}
	if o.MaxSpan <= 0 {
		o.MaxSpan = DefaultMaxSpan
	}
	return o
}

// Tracker holds per-file pairing state.
type Tracker struct {
	opts        Options
	active      bool
	disableLine int
	enableLine  int
	disables    int
	enables     int
}

// New returns a tracker; zero fields of opts take defaults.
func New(opts Options) *Tracker {
	return &Tracker{opts: opts.withDefaults()}
}

// Active reports whether a disable call is waiting for its enable.
func (t *Tracker) Active() bool { return t.active }

// Counts returns how many disable and enable calls were seen.
func (t *Tracker) Counts() (disables, enables int) { return t.disables, t.enables }

type call struct {
	pos     int
	disable bool
}

// calls returns every call on the line in textual order.
func (t *Tracker) calls(clean string) []call {
	var out []call
	for _, pos := range findCalls(clean, t.opts.Disable) {
		out = append(out, call{pos: pos, disable: true})
	}
	for _, pos := range findCalls(clean, t.opts.Enable) {
		out = append(out, call{pos: pos})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

// Check processes the calls on line in left-to-right order.
func (t *Tracker) Check(clean string, line int) []diag.Finding {
	var out []diag.Finding
	for _, c := range t.calls(clean) {
		if f, ok := t.apply(c, line); ok {
			out = append(out, f)
		}
	}
	return out
}

// Observe updates state for the calls on line without reporting.
func (t *Tracker) Observe(clean string, line int) {
	for _, c := range t.calls(clean) {
		t.apply(c, line)
	}
}

func (t *Tracker) apply(c call, line int) (diag.Finding, bool) {
	col := c.pos + 1
	if c.disable {
		t.disables++
		if t.active {
			return diag.Finding{
				Code:   diag.PairNestedEnter,
				Column: col,
				Message: fmt.Sprintf("%s() called without matching %s() from previous call at line %d",
					t.opts.Disable, t.opts.Enable, t.disableLine),
				WithExcerpt: true,
			}, true
		}
		t.active = true
		t.disableLine = line
		return diag.Finding{
			Code:   diag.PairUsage,
			Column: col,
			Message: fmt.Sprintf("%s() suspends multitasking - keep the section short and close it with %s()",
				t.opts.Disable, t.opts.Enable),
			WithExcerpt: true,
		}, true
	}

	t.enables++
	t.enableLine = line
	if !t.active {
		return diag.Finding{
			Code:        diag.PairUnmatchedOut,
			Column:      col,
			Message:     fmt.Sprintf("%s() called without matching %s()", t.opts.Enable, t.opts.Disable),
			WithExcerpt: true,
		}, true
	}
	t.active = false
	if span := line - t.disableLine; span > t.opts.MaxSpan {
		return diag.Finding{
			Code:   diag.PairSpan,
			Column: col,
			Message: fmt.Sprintf("%s()/%s() span is %d lines (limit %d, opened at line %d)",
				t.opts.Disable, t.opts.Enable, span, t.opts.MaxSpan, t.disableLine),
			WithExcerpt: true,
		}, true
	}
	return diag.Finding{}, false
}

// Finalize reports end-of-file problems. lastLine positions count mismatches.
func (t *Tracker) Finalize(lastLine int) []diag.Finding {
	var out []diag.Finding
	if t.disables != t.enables {
		out = append(out, diag.Finding{
			Code: diag.PairCountDiffers,
			Line: max(lastLine, 1),
			Message: fmt.Sprintf("Mismatched %s()/%s() count: %d %s, %d %s",
				t.opts.Disable, t.opts.Enable, t.disables, t.opts.Disable, t.enables, t.opts.Enable),
		})
	}
	if t.active {
		out = append(out, diag.Finding{
			Code:    diag.PairActiveAtEOF,
			Line:    max(lastLine, 1),
			Message: fmt.Sprintf("%s() still active at end of file (opened at line %d)", t.opts.Disable, t.disableLine),
		})
	}
	return out
}

// Reset clears state for a new file.
func (t *Tracker) Reset() {
	opts := t.opts
	*t = Tracker{opts: opts}
}

// findCalls returns byte offsets of name used as a call: a word boundary
// before it and optional blanks, then '(' after it.
func findCalls(line, name string) []int {
	var out []int
	for from := 0; from < len(line); {
		i := strings.Index(line[from:], name)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(name)
		from = end
		if start > 0 && isIdent(line[start-1]) {
			continue
		}
		j := end
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if j < len(line) && line[j] == '(' {
			out = append(out, start)
		}
	}
	return out
}

func isIdent(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
