// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"codex/internal/diag"
	"codex/internal/source"
)

// CheckDiagnostics verifies what every lint run must guarantee for one file:
//  1. each diagnostic names path and a line inside the file (line 1 for an empty file)
//  2. columns are 1-based
//  3. the category is the one the code belongs to
//  4. lines never go backwards
func CheckDiagnostics(diags []diag.Diagnostic, f *source.File, path string) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	last, err := safecast.Conv[uint32](max(f.LineCount(), 1))
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	var prev uint32
	for i, d := range diags {
		if d.File != path {
			return fmt.Errorf("#%d: file %q, want %q", i, d.File, path)
		}
		if d.Line < 1 || d.Line > last {
			return fmt.Errorf("#%d: line %d outside 1..%d", i, d.Line, last)
		}
		if d.Column < 1 {
			return fmt.Errorf("#%d: column %d is not 1-based", i, d.Column)
		}
		if d.Category != d.Code.Category() {
			return fmt.Errorf("#%d: category %s does not match code %s", i, d.Category, d.Code.ID())
		}
		if d.Line < prev {
			return fmt.Errorf("#%d: line %d after line %d", i, d.Line, prev)
		}
		prev = d.Line
	}
	return nil
}
