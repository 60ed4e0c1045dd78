package rules

import (
	"fmt"
	"strings"

	"codex/internal/diag"
)

var forInitTypes = []string{"int", "char", "long", "short", "float", "double", "unsigned", "signed"}

// forDeclaration reports the offset of "for" when its initializer declares a variable.
func forDeclaration(line string) int {
	for from := 0; ; {
		i := wordIndex(line[from:], "for")
		if i < 0 {
			return -1
		}
		at := from + i
		rest := strings.TrimLeft(line[at+3:], " \t")
		if strings.HasPrefix(rest, "(") {
			init := strings.TrimLeft(rest[1:], " \t")
			for _, ty := range forInitTypes {
				if strings.HasPrefix(init, ty) && (len(init) == len(ty) || !isIdentByte(init[len(ty)])) {
					return at
				}
			}
		}
		from = at + 3
	}
}

func hasHeader(line string, headers []string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	_, i := firstSubstring(trimmed, headers)
	return i >= 0
}

func callsAny(line string, set map[string]struct{}) (string, bool) {
	for _, tok := range tokens(line, " \t\n\r*();,=+-/<>!&|[]{}") {
		if _, ok := set[tok.text]; ok {
			return tok.text, true
		}
	}
	return "", false
}

type feature struct {
	legacy, modern diag.Code
	noun           string
	match          func(t *Tables, line string) bool
}

func (t *Tables) features() []feature {
	return []feature{
		{diag.LegacyDesignatedInit, diag.ModernDesignatedInit, "C99 designated initializer",
			func(t *Tables, l string) bool { _, i := firstSubstring(l, t.DesignatedInit); return i >= 0 }},
		{diag.LegacyCompoundLiteral, diag.ModernCompoundLiteral, "C99 compound literal",
			func(t *Tables, l string) bool { _, i := firstSubstring(l, t.CompoundLiteral); return i >= 0 }},
		{diag.LegacyVariadicMacro, diag.ModernVariadicMacro, "C99 variadic macro",
			func(t *Tables, l string) bool { _, i := firstSubstring(l, t.VariadicMacro); return i >= 0 }},
		{diag.LegacyFlexibleArray, diag.ModernFlexibleArray, "C99 flexible array member",
			func(t *Tables, l string) bool { _, i := firstSubstring(l, t.FlexibleArray); return i >= 0 }},
		{diag.LegacyStdlibFunction, diag.ModernStdlibFunction, "C99+ standard library function",
			func(t *Tables, l string) bool { _, ok := callsAny(l, t.sets["c99lib"]); return ok }},
		{diag.LegacyHeader, diag.ModernHeader, "C99+ header file",
			func(t *Tables, l string) bool { return hasHeader(l, t.C99Headers) }},
	}
}

// Legacy checks conformance with C89. Findings are Syntax errors at column 1.
func Legacy(t *Tables) Checker {
	feats := t.features()
	return Func{ID: "c89", Fn: func(l Line) []diag.Finding {
		line := MaskLiterals(l.Clean)
		if kw, i := firstWord(line, t.C99Keywords); i >= 0 {
			msg := fmt.Sprintf("'%s' keyword is not available in C89", kw)
			if kw == "_Bool" {
				msg = "_Bool type is not available in C89"
			}
			return one(diag.Finding{Code: diag.LegacyKeyword, Column: 1, Message: msg})
		}
		if forDeclaration(line) >= 0 {
			return one(diag.Finding{Code: diag.LegacyForDeclaration, Column: 1,
				Message: "Variable declaration in for loop not allowed in C89"})
		}
		for _, f := range feats {
			if f.match(t, line) {
				return one(diag.Finding{Code: f.legacy, Column: 1,
					Message: f.noun + " found - not available in C89"})
			}
		}
		return nil
	}}
}

// Modern reports C99 constructs as informational warnings with an excerpt.
func Modern(t *Tables) Checker {
	feats := t.features()
	return Func{ID: "c99", Fn: func(l Line) []diag.Finding {
		line := MaskLiterals(l.Clean)
		warn := func(code diag.Code, noun string) []diag.Finding {
			return one(diag.Finding{Code: code, Column: 1, WithExcerpt: true,
				Message: noun + " detected - ensure your compiler supports C99"})
		}
		if _, i := firstWord(line, t.C99Keywords); i >= 0 {
			return warn(diag.ModernKeyword, "C99 keyword")
		}
		if _, i := firstSubstring(line, t.C99Features); i >= 0 || forDeclaration(line) >= 0 {
			return warn(diag.ModernFeature, "C99 feature")
		}
		for _, f := range feats {
			if f.match(t, line) {
				return warn(f.modern, f.noun)
			}
		}
		return nil
	}}
}
