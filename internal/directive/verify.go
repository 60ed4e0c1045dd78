package directive

import "codex/internal/diag"

// Report is the outcome of Verify.
type Report struct {
	Satisfied []Expectation
	Missing   []Expectation
	// Orphans are markers with no code line after them.
	Orphans []Expectation
	// Unexpected holds diagnostics on lines without a marker; only filled
	// in strict mode.
	Unexpected []diag.Diagnostic
}

// OK reports whether every expectation held and nothing unexpected fired.
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0 && len(r.Unexpected) == 0
}

type lineKey struct {
	file string
	line uint32
}

// Verify matches expectations against diags. Marker echoes are ignored so
// the same diagnostics work whether or not marker extraction was on.
func Verify(expect []Expectation, diags []diag.Diagnostic, strict bool) Report {
	byLine := make(map[lineKey][]diag.Diagnostic)
	for _, d := range diags {
		if d.Code == diag.MarkerComment {
			continue
		}
		k := lineKey{file: d.File, line: d.Line}
		byLine[k] = append(byLine[k], d)
	}

	var rep Report
	marked := make(map[lineKey]bool)
	for _, e := range expect {
		if e.Target == 0 {
			rep.Orphans = append(rep.Orphans, e)
			continue
		}
		k := lineKey{file: e.File, line: uint32(e.Target)} // #nosec G115 -- line numbers come from uint32
		marked[k] = true
		if satisfies(byLine[k], e.Code) {
			rep.Satisfied = append(rep.Satisfied, e)
		} else {
			rep.Missing = append(rep.Missing, e)
		}
	}

	if strict {
		for _, d := range diags {
			if d.Code == diag.MarkerComment {
				continue
			}
			if !marked[lineKey{file: d.File, line: d.Line}] {
				rep.Unexpected = append(rep.Unexpected, d)
			}
		}
	}
	return rep
}

func satisfies(found []diag.Diagnostic, code diag.Code) bool {
	if code == diag.UnknownCode {
		return len(found) > 0
	}
	for _, d := range found {
		if d.Code == code {
			return true
		}
	}
	return false
}
