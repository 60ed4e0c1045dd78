// Package config resolves rule modes and loads codex.toml.
package config

import (
	"errors"
	"strings"
)

// ErrConflictingModes is returned when two vendor modes force opposite standards.
var ErrConflictingModes = errors.New("SASC and VBCC modes cannot be combined: SAS/C is C89-only and VBCC implies C99")

// Modes are the user-selectable rule sets.
type Modes struct {
	Amiga   bool `toml:"amiga"`
	NDK     bool `toml:"ndk"`
	C89     bool `toml:"c89"`
	C99     bool `toml:"c99"`
	SASC    bool `toml:"sasc"`
	VBCC    bool `toml:"vbcc"`
	DICE    bool `toml:"dice"`
	MemSafe bool `toml:"memsafe"`
}

// Or returns the union of two selections.
func (m Modes) Or(o Modes) Modes {
	return Modes{
		Amiga:   m.Amiga || o.Amiga,
		NDK:     m.NDK || o.NDK,
		C89:     m.C89 || o.C89,
		C99:     m.C99 || o.C99,
		SASC:    m.SASC || o.SASC,
		VBCC:    m.VBCC || o.VBCC,
		DICE:    m.DICE || o.DICE,
		MemSafe: m.MemSafe || o.MemSafe,
	}
}

// Resolved is the effective mode set after applying the dependency rules.
type Resolved struct {
	Modes
	PascalCase     bool
	CompilerCompat bool
}

// Notice is an informational message produced during resolution.
type Notice struct {
	Warning bool
	Text    string
}

func (n Notice) String() string {
	if n.Warning {
		return "Warning: " + n.Text
	}
	return "Info: " + n.Text
}

// Resolve applies the mode dependencies in a fixed order:
// SASC, VBCC, AMIGA, DICE, NDK, MEMSAFE, then the C89 default.
func Resolve(sel Modes) (Resolved, []Notice, error) {
	if sel.SASC && sel.VBCC {
		return Resolved{}, nil, ErrConflictingModes
	}
	r := Resolved{Modes: sel}
	var notes []Notice
	info := func(text string) { notes = append(notes, Notice{Text: text}) }
	warn := func(text string) { notes = append(notes, Notice{Warning: true, Text: text}) }

	if r.SASC {
		if r.C99 {
			warn("SAS/C mode overrides C99 mode (SAS/C is C89-only)")
		}
		r.C89, r.C99 = true, false
		r.CompilerCompat = true
	}
	if r.VBCC {
		if r.C89 {
			warn("VBCC mode overrides C89 mode (VBCC supports C99)")
		}
		r.C99, r.C89 = true, false
		r.CompilerCompat = true
	}
	if r.Amiga {
		if !r.NDK {
			info("Amiga mode enables NDK validation")
		}
		r.NDK = true
		r.PascalCase = true
		r.CompilerCompat = true
	}
	if r.DICE {
		if !r.C89 {
			info("DICE mode enables C89 validation")
		}
		if !r.NDK {
			info("DICE mode enables NDK validation")
		}
		r.C89, r.NDK = true, true
		r.CompilerCompat = true
	}
	if r.NDK {
		r.CompilerCompat = true
	}
	if r.MemSafe {
		if !r.C89 {
			info("MEMSAFE mode enables C89 validation")
		}
		r.C89 = true
	}
	if !r.C89 && !r.C99 && !r.SASC && !r.VBCC && !r.DICE {
		r.C89 = true
	}
	return r, notes, nil
}

// ActiveNames lists enabled modes in report order.
func (r Resolved) ActiveNames() []string {
	var out []string
	add := func(on bool, name string) {
		if on {
			out = append(out, name)
		}
	}
	add(r.Amiga, "Amiga")
	add(r.NDK, "NDK")
	add(r.C89, "C89")
	add(r.C99, "C99")
	add(r.SASC, "SAS/C")
	add(r.VBCC, "VBCC")
	add(r.DICE, "DICE")
	add(r.MemSafe, "MEMSAFE")
	return out
}

// Summary is the "Active validation modes" line body.
func (r Resolved) Summary() string {
	names := r.ActiveNames()
	if len(names) == 0 {
		return "None (basic style checking only)"
	}
	return strings.Join(names, ", ")
}
