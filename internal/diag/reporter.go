package diag

import "errors"

// OverflowNotice is emitted once when the bag limit is first exceeded.
const OverflowNotice = "Warning: Maximum error count reached. Further errors will be ignored."

// Reporter is the minimal contract for receiving diagnostics from the engine.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into a *Bag and reports overflow exactly once.
type BagReporter struct {
	Bag      *Bag
	OnNotice func(msg string)
	noticed  bool
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	if err := r.Bag.Append(d); errors.Is(err, ErrCapacity) && !r.noticed {
		r.noticed = true
		if r.OnNotice != nil {
			r.OnNotice(OverflowNotice)
		}
	}
}

// Overflowed reports whether the overflow notice has fired.
func (r *BagReporter) Overflowed() bool {
	return r != nil && r.noticed
}

// SliceReporter collects diagnostics without a limit; per-file buffers use it.
type SliceReporter struct {
	Items []Diagnostic
}

func (r *SliceReporter) Report(d Diagnostic) {
	r.Items = append(r.Items, d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// MultiReporter fans every diagnostic out to all reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
