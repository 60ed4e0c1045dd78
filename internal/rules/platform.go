package rules

import (
	"strings"

	"codex/internal/diag"
)

var controlWords = map[string]struct{}{
	"if": {}, "else": {}, "while": {}, "for": {}, "switch": {}, "return": {},
	"do": {}, "sizeof": {}, "case": {}, "goto": {},
}

// PlatformOptions toggles the parts of the platform checker.
type PlatformOptions struct {
	PascalCase bool
}

// Platform recommends Amiga types and naming. The first matching rule wins:
// type hints, deprecated typedefs, function naming, then NULL assignment.
func Platform(t *Tables, opts PlatformOptions) Checker {
	deprecated := t.DeprecatedNames()
	return Func{ID: "amiga", Fn: func(l Line) []diag.Finding {
		line := MaskLiterals(l.Clean)
		for _, h := range t.TypeHints {
			if _, i := firstSubstring(line, h.Patterns); i >= 0 {
				code := diag.PlatformType
				if h.Primitive {
					code = diag.PlatformPrimitive
				}
				return one(diag.Finding{Code: code, Column: 1, Message: h.Message, WithExcerpt: true})
			}
		}
		for _, name := range deprecated {
			if wordIndex(line, name) >= 0 {
				return one(diag.Finding{Code: diag.PlatformDeprecated, Column: 1,
					Message: t.Deprecated[name], WithExcerpt: true})
			}
		}
		if opts.PascalCase {
			if name, col, ok := definedFunction(line); ok && name[0] >= 'a' && name[0] <= 'z' &&
				!t.in("stdlib", name) && !t.in("platform", name) {
				return one(diag.Finding{Code: diag.PlatformPascalCase, Column: col,
					Message: "Use PascalCase function names", WithExcerpt: true})
			}
		}
		if zeroPointerAssign(line) {
			return one(diag.Finding{Code: diag.PlatformNullPointer, Column: 1,
				Message: "Assigning 0 to a pointer. Use the Amiga constant NULL instead.", WithExcerpt: true})
		}
		return nil
	}}
}

// definedFunction extracts the name from lines shaped like "TYPE name(...)"
// that do not end in ';'.
func definedFunction(line string) (string, int, bool) {
	trimmed := strings.TrimRight(line, " \t")
	if !strings.Contains(trimmed, "(") || strings.HasSuffix(trimmed, ";") {
		return "", 0, false
	}
	toks := tokens(line, " \t\n\r")
	if len(toks) < 2 || !isIdent(toks[0].text) {
		return "", 0, false
	}
	if _, ok := controlWords[toks[0].text]; ok {
		return "", 0, false
	}
	second := toks[1]
	name := strings.TrimLeft(second.text, "*")
	col := second.col + len(second.text) - len(name)
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	if !isIdent(name) {
		return "", 0, false
	}
	return name, col, true
}

// zeroPointerAssign matches "= 0" on a line mentioning '*', skipping
// comparisons and longer literals like 0x10 or 0.5.
func zeroPointerAssign(line string) bool {
	if !strings.Contains(line, "*") {
		return false
	}
	for from := 0; ; {
		i := strings.Index(line[from:], "= 0")
		if i < 0 {
			return false
		}
		at := from + i
		from = at + 3
		if at > 0 && strings.IndexByte("=!<>+-*/%&|^", line[at-1]) >= 0 {
			continue
		}
		if from < len(line) && (isIdentByte(line[from]) || line[from] == '.') {
			continue
		}
		return true
	}
}
