package diag

import (
	"errors"
	"sort"
)

// DefaultCapacity matches the historical error table size.
const DefaultCapacity = 1000

// ErrCapacity is returned by Append once the bag holds its maximum.
var ErrCapacity = errors.New("diagnostic capacity reached")

// Sink accepts diagnostics in emission order.
type Sink interface {
	Append(d Diagnostic) error
}

type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag creates a bag; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 256 {
		capHint = 256
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Append adds a diagnostic, honouring the limit.
// It returns ErrCapacity once the limit is reached and drops the entry.
func (b *Bag) Append(d Diagnostic) error {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return ErrCapacity
	}
	b.items = append(b.items, d)
	return nil
}

func (b *Bag) Cap() int {
	return b.max
}

// Dropped counts diagnostics rejected because of the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// length
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics as a read-only slice.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasCategory reports whether any diagnostic has category c.
func (b *Bag) HasCategory(c Category) bool {
	for i := range b.items {
		if b.items[i].Category == c {
			return true
		}
	}
	return false
}

// CountByCategory returns per-category totals.
func (b *Bag) CountByCategory() map[Category]int {
	out := make(map[Category]int, 5)
	for i := range b.items {
		out[b.items[i].Category]++
	}
	return out
}

// Sort orders by file, line, column, then code. Emission order is the
// default report order, so only golden helpers and tests call this.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})
}
