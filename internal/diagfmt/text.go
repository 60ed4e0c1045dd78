package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"codex/internal/diag"
)

// ReportHeader opens the diagnostic list in non-quiet text output.
const ReportHeader = "\n--- Detailed Error Report ---"

// Text prints one "path:line:col: [CATEGORY] message" line per diagnostic,
// followed by "    | excerpt" when the diagnostic carries one.
func Text(w io.Writer, items []diag.Diagnostic, opts Opts) error {
	bw := bufio.NewWriter(w)
	if !opts.Quiet && len(items) > 0 {
		fmt.Fprintln(bw, ReportHeader)
	}
	for _, d := range items[:opts.limit(len(items))] {
		fmt.Fprintf(bw, "%s:%d:%d: [%s] %s\n",
			opts.PathMode.apply(d.File, opts.BaseDir), d.Line, d.Column, d.Category, d.Message)
		if d.Excerpt != "" {
			fmt.Fprintf(bw, "    | %s\n", d.Excerpt)
		}
	}
	return bw.Flush()
}
