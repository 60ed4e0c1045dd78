package rules

import (
	"fmt"

	"codex/internal/diag"
)

// MemorySafety flags calls to unsafe library functions.
func MemorySafety(t *Tables) Checker {
	return Func{ID: "memsafe", Fn: func(l Line) []diag.Finding {
		for _, tok := range tokens(MaskLiterals(l.Clean), tokenDelims) {
			r, ok := t.Unsafe[tok.text]
			if !ok {
				continue
			}
			var msg string
			switch tok.text {
			case "realpath":
				msg = "Unsafe use of 'realpath' suspected. Ensure the second argument is a valid buffer, not NULL."
			case "scanf", "sscanf":
				msg = fmt.Sprintf("Unsafe use of '%s' suspected. Ensure format string uses width specifiers (e.g., '%%10s') and check the return value.", tok.text)
			default:
				if !r.Has {
					msg = fmt.Sprintf("Memory-unsafe function '%s' found", tok.text)
				} else {
					msg = fmt.Sprintf("Memory-unsafe function '%s' found - consider using '%s' instead", tok.text, r.Text)
				}
			}
			return one(diag.Finding{Code: diag.MemUnsafeFunction, Column: tok.col, Message: msg})
		}
		return nil
	}}
}
