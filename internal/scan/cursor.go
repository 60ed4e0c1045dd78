package scan

// cursor is a byte position inside one raw line.
type cursor struct {
	line string
	off  int
}

// EOF reports whether the whole line was consumed.
func (c *cursor) EOF() bool {
	return c.off >= len(c.line)
}

// Peek returns the current byte, or 0 at the end of the line.
func (c *cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.line[c.off]
}

// Peek2 returns the current and the next byte; ok is false when fewer than two remain.
func (c *cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= len(c.line) {
		return 0, 0, false
	}
	return c.line[c.off], c.line[c.off+1], true
}

// Bump consumes and returns the current byte.
func (c *cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.line[c.off]
	c.off++
	return b
}

// Col returns the 1-based column of the current byte.
func (c *cursor) Col() int {
	return c.off + 1
}
