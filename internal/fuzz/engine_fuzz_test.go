package fuzztests

import (
	"testing"
	"time"

	"codex/internal/config"
	"codex/internal/diag"
	"codex/internal/lint"
	"codex/internal/rules"
	"codex/internal/source"
	"codex/internal/testkit"
)

// runTimeout is far above any real file; a slower run means a scanning loop
// stopped advancing.
const runTimeout = 5 * time.Second

var fuzzModes = []config.Modes{
	{},
	{Amiga: true, C89: true, MemSafe: true},
	{VBCC: true, NDK: true},
	{SASC: true, DICE: true, Amiga: true},
}

func FuzzEngineInvariants(f *testing.F) {
	addCorpusSeeds(f)
	tables := rules.Default()
	var engines []*lint.Engine
	for _, sel := range fuzzModes {
		resolved, _, err := config.Resolve(sel)
		if err != nil {
			f.Fatalf("resolve %+v: %v", sel, err)
		}
		for _, policy := range []lint.Policy{lint.StopAtFirst, lint.ReportAll} {
			engines = append(engines, lint.New(lint.Options{
				Modes:      resolved,
				Tables:     tables,
				LineLength: 80,
				Policy:     policy,
			}))
		}
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.c", append([]byte(nil), input...)))

		for _, e := range engines {
			done := make(chan []diag.Diagnostic, 1)
			go func() {
				var rep diag.SliceReporter
				e.Run(file, "fuzz.c", &rep)
				done <- rep.Items
			}()
			select {
			case diags := <-done:
				if err := testkit.CheckDiagnostics(diags, file, "fuzz.c"); err != nil {
					t.Fatalf("%v\ninput: %q", err, input)
				}
			case <-time.After(runTimeout):
				t.Fatalf("engine did not finish within %s on %q", runTimeout, input)
			}
		}
	})
}
