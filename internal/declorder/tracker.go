// Package declorder flags C89 declarations that follow a statement in the
// same block. It is a line heuristic, not a parser: a line counts as a
// declaration when its first word is a type or storage-class keyword and a
// ';' appears before any '('. Complex declarations are under-flagged on
// purpose.
package declorder

import (
	"strings"

	"codex/internal/diag"
)

// MaxDepth bounds brace tracking; deeper nesting is not tracked.
const MaxDepth = 32

const declAfterStmt = "Variable declaration after a statement is not allowed in C89."

// DefaultKeywords are the words that open a declaration.
var DefaultKeywords = []string{
	"auto", "char", "const", "double", "enum", "extern", "float", "int",
	"long", "register", "short", "signed", "static", "struct", "typedef",
	"union", "unsigned", "void", "volatile",
}

// Tracker holds brace depth and, per depth, whether a statement was seen.
type Tracker struct {
	depth    int
	seen     [MaxDepth]bool
	keywords map[string]struct{}
}

// New returns a tracker using keywords, or DefaultKeywords when empty.
func New(keywords []string) *Tracker {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	t := &Tracker{keywords: make(map[string]struct{}, len(keywords))}
	for _, kw := range keywords {
		t.keywords[kw] = struct{}{}
	}
	return t
}

// Depth returns the current brace depth.
func (t *Tracker) Depth() int { return t.depth }

// StatementSeen reports the flag for the current depth.
func (t *Tracker) StatementSeen() bool { return t.seen[t.depth] }

// IsKeyword reports whether word opens a declaration.
func (t *Tracker) IsKeyword(word string) bool {
	_, ok := t.keywords[word]
	return ok
}

type lineKind uint8

const (
	kindNone lineKind = iota
	kindDecl
	kindStatement
)

func (t *Tracker) classify(clean string) (kind lineKind, col int) {
	trimmed := strings.TrimLeft(clean, " \t\r\n\v\f")
	if trimmed == "" {
		return kindNone, 0
	}
	col = len(clean) - len(trimmed) + 1
	first := FirstWord(trimmed)
	switch {
	case t.IsKeyword(first):
		semi := strings.IndexByte(trimmed, ';')
		paren := strings.IndexByte(trimmed, '(')
		if semi >= 0 && (paren < 0 || semi < paren) {
			return kindDecl, col
		}
		return kindNone, col
	case isLabel(first) || trimmed[0] == '}':
		return kindNone, col
	}
	return kindStatement, col
}

// Check inspects one cleaned line. A declaration after a statement at the
// same depth yields a finding; any other non-label line marks the depth as
// having seen a statement. File scope (depth 0) never reports.
func (t *Tracker) Check(clean string) (diag.Finding, bool) {
	kind, col := t.classify(clean)
	switch kind {
	case kindDecl:
		if t.depth > 0 && t.seen[t.depth] {
			return diag.Finding{
				Code:        diag.LegacyDeclAfterStmt,
				Column:      col,
				Message:     declAfterStmt,
				WithExcerpt: true,
			}, true
		}
	case kindStatement:
		if t.depth > 0 {
			t.seen[t.depth] = true
		}
	}
	return diag.Finding{}, false
}

// Observe applies the bookkeeping of Check without reporting. The
// dispatcher calls it when an earlier checker already reported for the line.
func (t *Tracker) Observe(clean string) {
	if kind, _ := t.classify(clean); kind == kindStatement && t.depth > 0 {
		t.seen[t.depth] = true
	}
}

// UpdateDepth applies every brace on the line. It runs after all checks.
func (t *Tracker) UpdateDepth(clean string) {
	for i := 0; i < len(clean); i++ {
		switch clean[i] {
		case '{':
			if t.depth < MaxDepth-1 {
				t.depth++
				t.seen[t.depth] = false
			}
		case '}':
			if t.depth > 0 {
				t.seen[t.depth] = false
				t.depth--
			}
		}
	}
}

// Reset clears all state for a new file.
func (t *Tracker) Reset() {
	t.depth = 0
	t.seen = [MaxDepth]bool{}
}

// isLabel matches "case" and "default" with or without the colon attached.
func isLabel(word string) bool {
	word = strings.TrimSuffix(word, ":")
	return word == "case" || word == "default"
}

// FirstWord returns the leading run of non-whitespace bytes.
func FirstWord(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
