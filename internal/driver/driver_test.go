package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codex/internal/config"
	"codex/internal/diag"
	"codex/internal/lint"
	"codex/internal/pipeline"
)

func engine(t *testing.T, sel config.Modes) *lint.Engine {
	t.Helper()
	modes, _, err := config.Resolve(sel)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return lint.New(lint.Options{Modes: modes, LineLength: 256})
}

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, p)
	}
	return dir, paths
}

func TestRunOrderIsStableAcrossJobs(t *testing.T) {
	dir, _ := writeFiles(t, map[string]string{
		"a.c": "x = 1;\n",
		"b.c": "inline int f;\ny = 2;\n",
		"c.c": "int ok;\n",
		"d.c": "Forbid();\n",
	})
	paths := []string{
		filepath.Join(dir, "d.c"),
		filepath.Join(dir, "a.c"),
		filepath.Join(dir, "c.c"),
		filepath.Join(dir, "b.c"),
	}

	run := func(jobs int) []diag.Diagnostic {
		var rep diag.SliceReporter
		res, err := Run(context.Background(), paths, Options{Engine: engine(t, config.Modes{}), Jobs: jobs}, &rep)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if res.Checked != 4 || res.Lines != 5 {
			t.Fatalf("unexpected result %+v", res)
		}
		return rep.Items
	}
	seq := run(1)
	par := run(4)
	if len(seq) == 0 || len(seq) != len(par) {
		t.Fatalf("length mismatch %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("item %d differs: %v vs %v", i, seq[i], par[i])
		}
	}
	if !strings.HasSuffix(seq[0].File, "d.c") {
		t.Fatalf("first file must be d.c, got %s", seq[0].File)
	}
}

func TestRunSkipsUnreadableFiles(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"ok.c": "x = 1;\n"})
	missing := filepath.Join(t.TempDir(), "missing.c")
	var rec pipeline.Recorder
	var rep diag.SliceReporter
	res, err := Run(context.Background(), []string{missing, paths[0]}, Options{Engine: engine(t, config.Modes{}), Progress: &rec}, &rep)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Failed != 1 || res.Checked != 1 || res.Files[0].Err == nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(rep.Items) != 1 {
		t.Fatalf("the readable file must still be linted, got %v", rep.Items)
	}
	var sawError bool
	for _, evt := range rec.Events() {
		if evt.Status == pipeline.StatusError && evt.File == missing {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("no error event for %s", missing)
	}
}

func TestRunUsesCache(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.c": "x = 1;\nint y;\n"})
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := Options{Engine: engine(t, config.Modes{}), Cache: cache}

	var first diag.SliceReporter
	res, err := Run(context.Background(), paths, opts, &first)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Files[0].Cached {
		t.Fatalf("first run cannot be cached")
	}

	var second diag.SliceReporter
	res, err = Run(context.Background(), paths, opts, &second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Files[0].Cached || res.Lines != 2 {
		t.Fatalf("expected cache hit, got %+v", res.Files[0])
	}
	if len(first.Items) != len(second.Items) || first.Items[0] != second.Items[0] {
		t.Fatalf("cached diagnostics differ: %v vs %v", first.Items, second.Items)
	}

	// another mode set must not reuse the entry
	opts.Engine = engine(t, config.Modes{C99: true})
	res, err = Run(context.Background(), paths, opts, &diag.SliceReporter{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Files[0].Cached {
		t.Fatalf("fingerprint ignored the configuration")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	opts.Engine = engine(t, config.Modes{})
	res, _ = Run(context.Background(), paths, opts, &diag.SliceReporter{})
	if res.Files[0].Cached {
		t.Fatalf("cache survived DropAll")
	}
}

func TestRunCancelled(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.c": "x;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, paths, Options{Engine: engine(t, config.Modes{})}, nil); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestExpandPaths(t *testing.T) {
	dir, _ := writeFiles(t, map[string]string{"b.c": "", "a.h": "", "notes.txt": ""})
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "x.c"), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ExpandPaths([]string{"given.c", dir})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{"given.c", filepath.Join(dir, "a.h"), filepath.Join(dir, "b.c")}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("want %v, got %v", want, got)
	}
}
