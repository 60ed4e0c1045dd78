package rules

import (
	"strings"

	"codex/internal/diag"
)

const magicOperators = "+-*/%=(<>"

// MagicNumber flags a numeric literal whose nearest non-blank predecessor
// is an operator or '('. Literals after '{' or ',' (aggregate initializers)
// are left alone. On declaration lines only a literal directly touching the
// operator counts, so "int n = 20;" names a constant while "int n = (20);"
// is still flagged.
func MagicNumber(isDeclKeyword func(string) bool) Checker {
	return Func{ID: "magic-number", Fn: func(l Line) []diag.Finding {
		line := l.Clean
		skipBlanks := true
		if isDeclKeyword != nil {
			trimmed := strings.TrimLeft(line, " \t")
			if toks := tokens(trimmed, " \t"); len(toks) > 0 && isDeclKeyword(toks[0].text) {
				skipBlanks = false
			}
		}
		if col := magicColumn(line, skipBlanks); col > 0 {
			return one(diag.Finding{
				Code:        diag.StyleMagicNumber,
				Column:      col,
				Message:     "Magic number found. Consider using a named constant.",
				WithExcerpt: true,
			})
		}
		return nil
	}}
}

func magicColumn(line string, skipBlanks bool) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if c < '0' || c > '9' {
			continue
		}
		if i > 0 && (isIdentByte(line[i-1]) || line[i-1] == '.') {
			continue
		}
		j := i - 1
		for skipBlanks && j >= 0 && (line[j] == ' ' || line[j] == '\t') {
			j--
		}
		if j >= 0 && strings.IndexByte(magicOperators, line[j]) >= 0 {
			return i + 1
		}
	}
	return 0
}
