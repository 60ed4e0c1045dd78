// Package scan strips C comments from one line at a time while tracking
// string and character literals. The only state that survives between lines
// is whether a block comment is still open.
package scan

import "strings"

type litState uint8

const (
	inCode litState = iota
	inString
	inChar
)

// Result is the outcome of scanning one raw line.
type Result struct {
	// Clean holds the code-state text. Block comment bytes are replaced by
	// spaces so columns in Clean match columns in the raw line; a line
	// comment truncates the line.
	Clean string
	// OpenedComment is set when a block comment started on this line.
	OpenedComment bool
	// LineComment is the 1-based column of a "//" found in code, or 0.
	LineComment int
}

// Blank reports whether nothing but whitespace survived scanning.
func (r Result) Blank() bool {
	return strings.TrimSpace(r.Clean) == ""
}

// Scanner carries the multi-line comment flag across the lines of one file.
// The zero value is ready to use at the start of a file.
type Scanner struct {
	inComment bool
}

// InComment reports whether a block comment is open after the last line.
func (s *Scanner) InComment() bool {
	return s.inComment
}

// Reset prepares the scanner for a new file.
func (s *Scanner) Reset() {
	s.inComment = false
}

// Scan strips comments from raw and updates the comment state.
func (s *Scanner) Scan(raw string) Result {
	var (
		out   strings.Builder
		res   Result
		state = inCode
		cur   = cursor{line: raw}
	)
	out.Grow(len(raw))

	for !cur.EOF() {
		if s.inComment {
			if b0, b1, ok := cur.Peek2(); ok && b0 == '*' && b1 == '/' {
				cur.Bump()
				cur.Bump()
				out.WriteString("  ")
				s.inComment = false
				continue
			}
			cur.Bump()
			out.WriteByte(' ')
			continue
		}

		b := cur.Peek()
		switch state {
		case inString, inChar:
			if b == '\\' {
				// escape pair is copied verbatim, even at end of line
				out.WriteByte(cur.Bump())
				if !cur.EOF() {
					out.WriteByte(cur.Bump())
				}
				continue
			}
			if (state == inString && b == '"') || (state == inChar && b == '\'') {
				state = inCode
			}
			out.WriteByte(cur.Bump())
			continue
		}

		if b0, b1, ok := cur.Peek2(); ok && b0 == '/' {
			if b1 == '*' {
				cur.Bump()
				cur.Bump()
				out.WriteString("  ")
				s.inComment = true
				res.OpenedComment = true
				continue
			}
			if b1 == '/' {
				res.LineComment = cur.Col()
				break
			}
		}

		switch b {
		case '"':
			state = inString
		case '\'':
			state = inChar
		}
		out.WriteByte(cur.Bump())
	}

	res.Clean = out.String()
	return res
}
