package diagfmt

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary holds the end-of-run counts.
type Summary struct {
	Files  int
	Lines  int
	Issues int
	// Modes is the "Active validation modes" value.
	Modes string
}

var printer = message.NewPrinter(language.English)

// WriteSummary prints the completion banner, active modes and the totals.
func WriteSummary(w io.Writer, s Summary) error {
	if _, err := printer.Fprintf(w, "\nCodex analysis complete.\nActive validation modes: %s\n", s.Modes); err != nil {
		return err
	}
	var err error
	if s.Issues > 0 {
		_, err = printer.Fprintf(w, "Found %d issues in %d files (%d lines processed).\n", s.Issues, s.Files, s.Lines)
	} else {
		_, err = printer.Fprintf(w, "No issues found in %d files (%d lines processed).\n", s.Files, s.Lines)
	}
	return err
}
