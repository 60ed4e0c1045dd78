package diagfmt

import (
	"encoding/json"
	"io"

	"codex/internal/diag"
)

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Code     string `json:"code"`
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
	Message  string `json:"message"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// SummaryJSON mirrors the human summary.
type SummaryJSON struct {
	Files   int      `json:"files"`
	Lines   int      `json:"lines"`
	Failed  []string `json:"failed,omitempty"`
	Modes   []string `json:"modes"`
	Dropped int      `json:"dropped,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Summary     *SummaryJSON     `json:"summary,omitempty"`
}

// BuildDiagnosticsOutput builds the JSON output structure without encoding it.
func BuildDiagnosticsOutput(items []diag.Diagnostic, summary *SummaryJSON, opts Opts) DiagnosticsOutput {
	n := opts.limit(len(items))
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, n),
		Summary:     summary,
	}
	for _, d := range items[:n] {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Category: d.Category.String(),
			Level:    d.Category.Level(),
			Code:     d.Code.ID(),
			File:     opts.PathMode.apply(d.File, opts.BaseDir),
			Line:     d.Line,
			Column:   d.Column,
			Message:  d.Message,
			Excerpt:  d.Excerpt,
		})
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes indented JSON.
func JSON(w io.Writer, items []diag.Diagnostic, summary *SummaryJSON, opts Opts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(items, summary, opts))
}
