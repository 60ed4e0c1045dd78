package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatGolden renders diagnostics into a stable, single-line-per-entry form
// suitable for golden comparisons: "CATEGORY CODE path:line:col message".
func FormatGolden(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	rendered := make([]Diagnostic, len(diags))
	copy(rendered, diags)
	for i := range rendered {
		rendered[i].File = normalizePath(rendered[i].File)
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Category, d.Code.ID(), d.File, d.Line, d.Column, sanitizeMessage(d.Message))
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
