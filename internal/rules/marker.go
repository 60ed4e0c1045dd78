package rules

import (
	"strings"

	"codex/internal/diag"
)

// MarkerTag opens an inline expectation inside a comment.
const MarkerTag = "$CODEX:"

// ParseMarker extracts the text after the first marker on a raw line. The
// text runs up to the next '/' or '*' so a closing "*/" is not included.
func ParseMarker(raw string) (string, bool) {
	i := strings.Index(raw, MarkerTag)
	if i < 0 {
		return "", false
	}
	rest := strings.TrimLeft(raw[i+len(MarkerTag):], " \t")
	if end := strings.IndexAny(rest, "/*"); end >= 0 {
		rest = rest[:end]
	}
	rest = strings.TrimRight(rest, " \t")
	if rest == "" {
		return "", false
	}
	return rest, true
}

// Marker echoes the marker text as a Comment diagnostic at column 1.
func Marker() Checker {
	return Func{ID: "marker", Fn: func(l Line) []diag.Finding {
		text, ok := ParseMarker(l.Raw)
		if !ok {
			return nil
		}
		return one(diag.Finding{Code: diag.MarkerComment, Column: 1, Message: text})
	}}
}
