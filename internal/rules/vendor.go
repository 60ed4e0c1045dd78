package rules

import (
	"fmt"
	"strings"

	"codex/internal/diag"
)

// Vendor selects a compiler keyword table.
type Vendor uint8

const (
	VendorNDK Vendor = iota
	VendorSASC
	VendorVBCC
	VendorDICE
)

func (v Vendor) String() string {
	switch v {
	case VendorNDK:
		return "ndk"
	case VendorSASC:
		return "sasc"
	case VendorVBCC:
		return "vbcc"
	case VendorDICE:
		return "dice"
	}
	return "unknown"
}

// keywordMatch treats entries with a single trailing underscore, like
// "__builtin_", as prefixes.
func keywordMatch(set map[string]struct{}, tok string) bool {
	if _, ok := set[tok]; ok {
		return true
	}
	for kw := range set {
		if strings.HasSuffix(kw, "_") && !strings.HasSuffix(kw, "__") && strings.HasPrefix(tok, kw) {
			return true
		}
	}
	return false
}

// Keywords flags compiler-specific keywords that should use the portable
// macros from compiler-specific.h.
func Keywords(t *Tables, v Vendor) Checker {
	return Func{ID: v.String(), Fn: func(l Line) []diag.Finding {
		if v == VendorNDK {
			for _, tok := range tokens(MaskLiterals(l.Clean), " \t\n\r") {
				if t.in("ndk", tok.text) {
					return one(diag.Finding{Code: diag.VendorNDKReserved, Column: tok.col,
						Message: "NDK reserved word found - use universal syntax instead"})
				}
			}
			return nil
		}

		set, code, phrase := "", diag.UnknownCode, ""
		switch v {
		case VendorSASC:
			set, code, phrase = "sasc", diag.VendorSASC, "is incompatible with SAS/C"
		case VendorVBCC:
			set, code, phrase = "vbcc", diag.VendorVBCC, "is incompatible with VBCC"
		case VendorDICE:
			set, code, phrase = "ndk", diag.VendorDICE, "is DICE-incompatible"
		}
		for _, tok := range tokens(MaskLiterals(l.Clean), tokenDelims) {
			if !keywordMatch(t.sets[set], tok.text) {
				continue
			}
			msg := fmt.Sprintf("Keyword '%s' %s and has no direct universal equivalent.", tok.text, phrase)
			if r, ok := t.UniversalFor(tok.text); ok && r.Has {
				msg = fmt.Sprintf("Keyword '%s' %s. Use universal syntax '%s' instead.", tok.text, phrase, r.Text)
			}
			return one(diag.Finding{Code: code, Column: tok.col, Message: msg})
		}
		return nil
	}}
}
