// Package rules holds the lookup tables and the stateless per-line checkers.
// Each checker looks at one scanned line and returns at most one finding;
// a checker that finds nothing returns nil. None of them can fail.
package rules

import (
	"strings"

	"codex/internal/diag"
)

// Line is one source line as the checkers see it.
type Line struct {
	Number int
	// Raw is the line as read from the file.
	Raw string
	// Clean is Raw with comments blanked out.
	Clean string
	// CommentCol is the column of a "//" comment in code, or 0.
	CommentCol int
}

// Checker inspects one line.
type Checker interface {
	Name() string
	Check(l Line) []diag.Finding
}

// Func adapts a plain function to Checker.
type Func struct {
	ID string
	Fn func(l Line) []diag.Finding
}

func (f Func) Name() string { return f.ID }

func (f Func) Check(l Line) []diag.Finding { return f.Fn(l) }

func one(f diag.Finding) []diag.Finding { return []diag.Finding{f} }

// tokenDelims mirrors the separators used for keyword tokenization.
const tokenDelims = " \t\n\r*();,"

type token struct {
	text string
	col  int
}

func tokens(line, delims string) []token {
	var out []token
	start := -1
	for i := 0; i <= len(line); i++ {
		if i == len(line) || strings.IndexByte(delims, line[i]) >= 0 {
			if start >= 0 {
				out = append(out, token{text: line[start:i], col: start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

// wordIndex returns the offset of the first whole-word occurrence of word.
func wordIndex(line, word string) int {
	for from := 0; from <= len(line)-len(word); {
		i := strings.Index(line[from:], word)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(word)
		before := start == 0 || !isIdentByte(line[start-1])
		after := end == len(line) || !isIdentByte(line[end])
		if before && after {
			return start
		}
		from = start + 1
	}
	return -1
}

func firstSubstring(line string, patterns []string) (string, int) {
	for _, p := range patterns {
		if i := strings.Index(line, p); i >= 0 {
			return p, i
		}
	}
	return "", -1
}

func firstWord(line string, words []string) (string, int) {
	for _, w := range words {
		if i := wordIndex(line, w); i >= 0 {
			return w, i
		}
	}
	return "", -1
}

// LineComment flags "//" comments, which C89 does not have.
func LineComment() Checker {
	return Func{ID: "line-comment", Fn: func(l Line) []diag.Finding {
		if l.CommentCol == 0 {
			return nil
		}
		return one(diag.Finding{
			Code:        diag.ComLineComment,
			Column:      l.CommentCol,
			Message:     "C++ comments ('//') are not allowed in C89.",
			WithExcerpt: true,
		})
	}}
}

// LineLength flags lines longer than limit bytes, at column limit+1.
func LineLength(limit int) Checker {
	return Func{ID: "line-length", Fn: func(l Line) []diag.Finding {
		if limit <= 0 || len(l.Raw) <= limit {
			return nil
		}
		return one(diag.Finding{
			Code:        diag.StyleLineLength,
			Column:      limit + 1,
			Message:     "Line exceeds maximum length.",
			WithExcerpt: true,
		})
	}}
}

// MaskLiterals blanks the inside of string and character literals so
// keyword lookups do not match text in them. Columns are preserved.
func MaskLiterals(line string) string {
	if strings.IndexByte(line, '"') < 0 && strings.IndexByte(line, '\'') < 0 {
		return line
	}
	b := []byte(line)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case quote == 0:
			if c == '"' || c == '\'' {
				quote = c
			}
		case c == '\\':
			b[i] = ' '
			if i+1 < len(b) {
				i++
				b[i] = ' '
			}
		case c == quote:
			quote = 0
		default:
			b[i] = ' '
		}
	}
	return string(b)
}
