package scan

import "testing"

func TestCursorWalk(t *testing.T) {
	c := cursor{line: "/*"}
	if b0, b1, ok := c.Peek2(); !ok || b0 != '/' || b1 != '*' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if c.Col() != 1 || c.Bump() != '/' {
		t.Fatalf("first byte")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
	if c.Peek() != '*' || c.Bump() != '*' || !c.EOF() {
		t.Fatalf("second byte")
	}
	if c.Peek() != 0 || c.Bump() != 0 || c.Col() != 3 {
		t.Fatalf("reads past the end must return 0 and not move")
	}
}
