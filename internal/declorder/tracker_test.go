package declorder

import "testing"

type step struct {
	line string
	want bool
}

func runLines(t *testing.T, tr *Tracker, steps []step) {
	t.Helper()
	for i, st := range steps {
		_, got := tr.Check(st.line)
		tr.UpdateDepth(st.line)
		if got != st.want {
			t.Fatalf("line %d %q: want finding=%v, got %v", i+1, st.line, st.want, got)
		}
	}
}

func TestDeclarationAfterStatement(t *testing.T) {
	runLines(t, New(nil), []step{
		{"void f(void)", false},
		{"{", false},
		{"    x = 10;", false},
		{"    int y = 20;", true},
		{"}", false},
	})
}

func TestDeclarationFirstInNestedBlock(t *testing.T) {
	runLines(t, New(nil), []step{
		{"void f(void) {", false},
		{"    x = 10;", false},
		{"    for (i = 0; i < 5; i++) {", false},
		{"        int y = 20;", false},
		{"    }", false},
		{"    int z;", true},
		{"}", false},
	})
}

func TestLabelsAndClosingBracesAreNotStatements(t *testing.T) {
	runLines(t, New(nil), []step{
		{"switch (k) {", false},
		{"case 1:", false},
		{"default:", false},
		{"int ok;", false},
	})
}

func TestDefaultLabelInsideFunction(t *testing.T) {
	runLines(t, New(nil), []step{
		{"void f(void) {", false},
		{"switch (k) {", false},
		{"default:", false},
		{"int ok;", false},
		{"case 2 :", false},
		{"int fine;", false},
		{"x = 1;", false},
		{"int late;", true},
		{"}", false},
		{"}", false},
	})
}

func TestFunctionPointerDeclarationIsUnderFlagged(t *testing.T) {
	runLines(t, New(nil), []step{
		{"{", false},
		{"x = 1;", false},
		{"int (*fp)(void);", false},
		{"int later;", true},
	})
}

func TestFileScopeNeverReports(t *testing.T) {
	runLines(t, New(nil), []step{
		{"#include <stdio.h>", false},
		{"int counter = 0;", false},
	})
}

func TestFindingColumnIsFirstNonSpace(t *testing.T) {
	tr := New(nil)
	tr.UpdateDepth("{")
	tr.Check("  x = 1;")
	f, ok := tr.Check("    long y;")
	if !ok || f.Column != 5 {
		t.Fatalf("expected finding at column 5, got %+v ok=%v", f, ok)
	}
}

func TestDepthIsClamped(t *testing.T) {
	tr := New(nil)
	for range MaxDepth + 10 {
		tr.UpdateDepth("{")
	}
	if tr.Depth() != MaxDepth-1 {
		t.Fatalf("expected depth clamp at %d, got %d", MaxDepth-1, tr.Depth())
	}
	for range MaxDepth + 10 {
		tr.UpdateDepth("}")
	}
	if tr.Depth() != 0 {
		t.Fatalf("depth must not go negative, got %d", tr.Depth())
	}
}

func TestDepthChangesResetStatementFlag(t *testing.T) {
	tr := New(nil)
	tr.UpdateDepth("{")
	tr.Check("x = 1;")
	if !tr.StatementSeen() {
		t.Fatalf("statement not recorded")
	}
	tr.UpdateDepth("{ }")
	if !tr.StatementSeen() {
		t.Fatalf("leaving an inner block must not clear the outer level")
	}
	tr.UpdateDepth("}")
	tr.UpdateDepth("{")
	if tr.StatementSeen() {
		t.Fatalf("re-entering a depth must start clean")
	}
}

func TestObserveMarksWithoutReporting(t *testing.T) {
	tr := New(nil)
	tr.UpdateDepth("{")
	tr.Observe("x = 42;")
	if _, ok := tr.Check("int y;"); !ok {
		t.Fatalf("observed statement must count for later declarations")
	}
}
