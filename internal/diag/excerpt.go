package diag

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	// ExcerptWidth bounds an excerpt both in bytes and in display columns,
	// ellipsis included.
	ExcerptWidth = 120
	ellipsis     = "..."
)

// Excerpt returns the line bounded to ExcerptWidth. Longer lines are cut on
// a rune boundary and end with an ellipsis. Tabs and other control bytes
// count as one column.
func Excerpt(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if fits(line, ExcerptWidth) == len(line) {
		return line
	}
	return line[:fits(line, ExcerptWidth-len(ellipsis))] + ellipsis
}

// fits returns the length of the longest prefix of s that stays within
// limit bytes and limit columns.
func fits(s string, limit int) int {
	cols := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		w := runewidth.RuneWidth(r)
		if w == 0 && (r < 0x20 || r == 0x7f) {
			w = 1
		}
		if i+size > limit || cols+w > limit {
			return i
		}
		cols += w
		i += size
	}
	return len(s)
}
