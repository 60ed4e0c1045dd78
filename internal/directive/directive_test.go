package directive

import (
	"testing"

	"codex/internal/diag"
	"codex/internal/source"
)

func collect(t *testing.T, src string) []Expectation {
	t.Helper()
	fs := source.NewFileSet()
	return Collect(fs.Get(fs.AddVirtual("m.c", []byte(src))), "m.c")
}

func TestCollectTargets(t *testing.T) {
	src := "x = 42; /* $CODEX: STY7001 magic */\n" +
		"/* $CODEX: next code line */\n" +
		"\n" +
		"inline int f;\n" +
		"/* multi\n" +
		"   $CODEX: inside a block */\n" +
		"y = 1;\n" +
		"/* $CODEX: trailing */\n"
	got := collect(t, src)
	if len(got) != 4 {
		t.Fatalf("want 4 markers, got %+v", got)
	}
	want := []struct {
		marker, target int
		code           diag.Code
		text           string
	}{
		{1, 1, diag.StyleMagicNumber, "STY7001 magic"},
		{2, 4, diag.UnknownCode, "next code line"},
		{6, 7, diag.UnknownCode, "inside a block"},
		{8, 0, diag.UnknownCode, "trailing"},
	}
	for i, w := range want {
		e := got[i]
		if e.MarkerLine != w.marker || e.Target != w.target || e.Code != w.code || e.Text != w.text {
			t.Errorf("marker %d: got %+v", i, e)
		}
	}
}

func TestVerify(t *testing.T) {
	expect := []Expectation{
		{File: "m.c", MarkerLine: 1, Target: 1, Text: "any"},
		{File: "m.c", MarkerLine: 3, Target: 4, Text: "C892001 keyword", Code: diag.LegacyKeyword},
		{File: "m.c", MarkerLine: 5, Target: 6, Text: "nothing here"},
		{File: "m.c", MarkerLine: 9, Text: "orphan"},
	}
	diags := []diag.Diagnostic{
		{File: "m.c", Line: 1, Code: diag.StyleMagicNumber},
		{File: "m.c", Line: 4, Code: diag.LegacyKeyword},
		{File: "m.c", Line: 6, Code: diag.MarkerComment},
		{File: "m.c", Line: 8, Code: diag.StyleLineLength},
	}

	rep := Verify(expect, diags, false)
	if len(rep.Satisfied) != 2 || len(rep.Missing) != 1 || len(rep.Orphans) != 1 || len(rep.Unexpected) != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if rep.Missing[0].MarkerLine != 5 {
		t.Fatalf("marker echo must not satisfy an expectation: %+v", rep.Missing)
	}
	if rep.OK() {
		t.Fatalf("report with missing expectations is not OK")
	}

	strict := Verify(expect[:2], diags, true)
	if len(strict.Unexpected) != 1 || strict.Unexpected[0].Line != 8 {
		t.Fatalf("strict mode: %+v", strict.Unexpected)
	}
}

func TestVerifyCodeMismatch(t *testing.T) {
	expect := []Expectation{{File: "m.c", MarkerLine: 2, Target: 2, Code: diag.PairSpan}}
	diags := []diag.Diagnostic{{File: "m.c", Line: 2, Code: diag.PairUsage}}
	if rep := Verify(expect, diags, false); len(rep.Missing) != 1 {
		t.Fatalf("wrong code must not satisfy: %+v", rep)
	}
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(Expectation{File: "b.c", MarkerLine: 1}, Expectation{File: "a.c", MarkerLine: 7})
	r.Add(Expectation{File: "a.c", MarkerLine: 2})
	all := r.All()
	if r.Len() != 3 || all[0].File != "a.c" || all[0].MarkerLine != 2 || all[2].File != "b.c" {
		t.Fatalf("unexpected order %+v", all)
	}
}
