package pairing

import (
	"testing"

	"codex/internal/diag"
)

func codes(fs []diag.Finding) []diag.Code {
	out := make([]diag.Code, len(fs))
	for i, f := range fs {
		out[i] = f.Code
	}
	return out
}

func TestExcessiveSpan(t *testing.T) {
	cases := []struct {
		name   string
		enable int
		want   bool
	}{
		{"span of 7", 17, true},
		{"span of 5", 15, false},
		{"same line distance 0", 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := New(Options{})
			if got := codes(tr.Check("Forbid();", 10)); len(got) != 1 || got[0] != diag.PairUsage {
				t.Fatalf("expected usage notice, got %v", got)
			}
			got := tr.Check("Permit();", tc.enable)
			if tc.want {
				if len(got) != 1 || got[0].Code != diag.PairSpan {
					t.Fatalf("expected one span finding, got %v", codes(got))
				}
			} else if len(got) != 0 {
				t.Fatalf("expected nothing, got %v", codes(got))
			}
			if fin := tr.Finalize(20); len(fin) != 0 {
				t.Fatalf("balanced file must finalize clean, got %v", codes(fin))
			}
		})
	}
}

func TestNestedDisableAndStrayEnable(t *testing.T) {
	tr := New(Options{})
	tr.Check("Forbid();", 1)
	got := tr.Check("Forbid ();", 2)
	if len(got) != 1 || got[0].Code != diag.PairNestedEnter {
		t.Fatalf("expected nested finding, got %v", codes(got))
	}
	tr.Check("Permit();", 3)
	got = tr.Check("Permit();", 4)
	if len(got) != 1 || got[0].Code != diag.PairUnmatchedOut {
		t.Fatalf("expected unmatched enable, got %v", codes(got))
	}
}

func TestBothCallsOnOneLineInTextOrder(t *testing.T) {
	tr := New(Options{})
	got := tr.Check("Permit(); Forbid();", 4)
	want := []diag.Code{diag.PairUnmatchedOut, diag.PairUsage}
	if len(got) != 2 || got[0].Code != want[0] || got[1].Code != want[1] {
		t.Fatalf("want %v, got %v", want, codes(got))
	}
	if got[0].Column != 1 || got[1].Column != 11 {
		t.Fatalf("unexpected columns %d %d", got[0].Column, got[1].Column)
	}

	tr = New(Options{})
	got = tr.Check("Forbid(); x++; Permit();", 4)
	if len(got) != 1 || got[0].Code != diag.PairUsage || tr.Active() {
		t.Fatalf("forbid then permit on one line must close the section, got %v", codes(got))
	}
}

func TestFinalize(t *testing.T) {
	tr := New(Options{})
	tr.Check("Forbid();", 3)
	fin := tr.Finalize(9)
	if len(fin) != 2 || fin[0].Code != diag.PairCountDiffers || fin[1].Code != diag.PairActiveAtEOF {
		t.Fatalf("unexpected finalize %v", codes(fin))
	}
	if fin[0].Line != 9 || fin[1].Line != 9 {
		t.Fatalf("finalize findings must point at the last line")
	}
}

func TestWordBoundaryAndCallShape(t *testing.T) {
	tr := New(Options{})
	for _, line := range []string{"MyForbid();", "Forbidden();", "x = Forbid;", "Forbid_x();"} {
		if got := tr.Check(line, 1); len(got) != 0 {
			t.Fatalf("%q must not count as a call, got %v", line, codes(got))
		}
	}
	if d, e := tr.Counts(); d != 0 || e != 0 {
		t.Fatalf("counts must stay zero, got %d/%d", d, e)
	}
}

func TestObserveTracksWithoutFindings(t *testing.T) {
	tr := New(Options{})
	tr.Observe("Forbid();", 1)
	if !tr.Active() {
		t.Fatalf("observe must activate")
	}
	got := tr.Check("Permit();", 9)
	if len(got) != 1 || got[0].Code != diag.PairSpan {
		t.Fatalf("expected span finding after observed forbid, got %v", codes(got))
	}
}

func TestCustomPair(t *testing.T) {
	tr := New(Options{Disable: "Disable", Enable: "Enable", MaxSpan: 2})
	tr.Check("Disable();", 1)
	got := tr.Check("Enable();", 4)
	if len(got) != 1 || got[0].Code != diag.PairSpan {
		t.Fatalf("expected span with custom limit, got %v", codes(got))
	}
	tr.Reset()
	if tr.Active() {
		t.Fatalf("reset must clear state")
	}
}
