package diag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Diagnostic struct {
	Category Category
	Code     Code
	File     string
	Line     uint32
	Column   uint32
	Message  string
	Excerpt  string
}

// Finding is what a checker reports before the dispatcher binds it to a file.
// Line 0 means "the line being processed".
type Finding struct {
	Code        Code
	Column      int
	Line        int
	Message     string
	WithExcerpt bool
}

// Bind turns a finding into a diagnostic for file at line; raw feeds the excerpt.
func (f Finding) Bind(file string, line int, raw string) Diagnostic {
	if f.Line > 0 {
		line = f.Line
	}
	col := f.Column
	if col < 1 {
		col = 1
	}
	d := Diagnostic{
		Category: f.Code.Category(),
		Code:     f.Code,
		File:     file,
		Line:     mustU32(line),
		Column:   mustU32(col),
		Message:  f.Message,
	}
	if f.WithExcerpt {
		d.Excerpt = Excerpt(raw)
	}
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s", d.File, d.Line, d.Column, d.Category, d.Message)
}

func mustU32(v int) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return out
}

func sortCodes(codes []Code) {
	slices.Sort(codes)
}
