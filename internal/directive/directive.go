// Package directive turns $CODEX: markers in C sources into expectations
// and checks them against the diagnostics a run produced.
//
// A marker on a line with code expects a diagnostic on that line. A marker
// on a comment-only line expects one on the next line that has code. When
// the marker text starts with a code ID such as STY7001, only a diagnostic
// with that code satisfies it.
package directive

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"codex/internal/diag"
	"codex/internal/rules"
	"codex/internal/scan"
	"codex/internal/source"
)

// Expectation is one marker.
type Expectation struct {
	File       string
	MarkerLine int
	// Target is the line expected to carry a diagnostic; 0 when no code
	// line follows the marker.
	Target int
	Text   string
	// Code is set when the text names a diagnostic code.
	Code diag.Code
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s:%d: expected diagnostic: %s", e.File, e.MarkerLine, e.Text)
}

var codeByID = func() map[string]diag.Code {
	out := make(map[string]diag.Code)
	for _, c := range diag.Codes() {
		out[c.ID()] = c
	}
	return out
}()

func parseCode(text string) diag.Code {
	if i := strings.IndexAny(text, " \t:"); i > 0 {
		text = text[:i]
	}
	return codeByID[text]
}

// Collect extracts the markers of one file. path is the name diagnostics use.
func Collect(f *source.File, path string) []Expectation {
	var (
		sc      scan.Scanner
		out     []Expectation
		pending []int // indices waiting for a code line
	)
	for num, raw := range f.Lines() {
		line := int(num)
		res := sc.Scan(raw)
		code := !res.Blank()
		if code {
			for _, i := range pending {
				out[i].Target = line
			}
			pending = pending[:0]
		}
		text, ok := rules.ParseMarker(raw)
		if !ok {
			continue
		}
		e := Expectation{File: path, MarkerLine: line, Text: text, Code: parseCode(text)}
		if code {
			e.Target = line
		}
		out = append(out, e)
		if !code {
			pending = append(pending, len(out)-1)
		}
	}
	return out
}

// Registry gathers expectations from several files; safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	items []Expectation
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(items ...Expectation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
}

// All returns every expectation ordered by file and marker line.
func (r *Registry) All() []Expectation {
	r.mu.Lock()
	out := append([]Expectation(nil), r.items...)
	r.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].MarkerLine < out[j].MarkerLine
	})
	return out
}

// Len returns the number of registered expectations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
