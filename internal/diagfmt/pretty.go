package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"codex/internal/diag"
)

type palette struct {
	path, loc, caret, excerpt *color.Color
	cats                      map[diag.Category]*color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:    mk(color.Bold),
		loc:     mk(color.Faint),
		caret:   mk(color.FgGreen, color.Bold),
		excerpt: mk(color.FgWhite),
		cats: map[diag.Category]*color.Color{
			diag.CatSyntax:   mk(color.FgRed, color.Bold),
			diag.CatStyle:    mk(color.FgCyan, color.Bold),
			diag.CatWarning:  mk(color.FgYellow, color.Bold),
			diag.CatCompiler: mk(color.FgMagenta, color.Bold),
			diag.CatComment:  mk(color.FgBlue),
		},
	}
}

// Pretty prints diagnostics for a terminal: path, coloured category,
// code and message, then the line excerpt with ^ under the column.
// Output follows the order of items.
func Pretty(w io.Writer, items []diag.Diagnostic, opts Opts) error {
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)
	for i, d := range items[:opts.limit(len(items))] {
		if i > 0 {
			bw.WriteString("\n")
		}
		cat := p.cats[d.Category]
		if cat == nil {
			cat = p.loc
		}
		fmt.Fprintf(bw, "%s%s %s %s\n",
			p.path.Sprint(opts.PathMode.apply(d.File, opts.BaseDir)),
			p.loc.Sprintf(":%d:%d:", d.Line, d.Column),
			cat.Sprintf("%s[%s]", strings.ToLower(d.Category.String()), d.Code.ID()),
			d.Message)
		if d.Excerpt == "" {
			continue
		}
		gutter := fmt.Sprintf("%5d | ", d.Line)
		fmt.Fprintf(bw, "%s%s\n", p.loc.Sprint(gutter), p.excerpt.Sprint(d.Excerpt))
		if pad, ok := caretPad(d.Excerpt, int(d.Column)); ok {
			fmt.Fprintf(bw, "%s%s%s\n", strings.Repeat(" ", len(gutter)-2), p.loc.Sprint("| "), pad+p.caret.Sprint("^"))
		}
	}
	return bw.Flush()
}

// caretPad returns the padding that puts a caret under byte column col of
// line. Tabs are kept so the caret lines up in the terminal.
func caretPad(line string, col int) (string, bool) {
	if col < 1 || col-1 > len(line) {
		return "", false
	}
	prefix := line[:col-1]
	if !strings.Contains(prefix, "\t") {
		return strings.Repeat(" ", runewidth.StringWidth(prefix)), true
	}
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String(), true
}
