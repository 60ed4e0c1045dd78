package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveMatrix(t *testing.T) {
	cases := []struct {
		name    string
		sel     Modes
		want    Modes
		compat  bool
		pascal  bool
		notices int
	}{
		{"empty defaults to c89", Modes{}, Modes{C89: true}, false, false, 0},
		{"c99 alone", Modes{C99: true}, Modes{C99: true}, false, false, 0},
		{"sasc over c99", Modes{SASC: true, C99: true}, Modes{SASC: true, C89: true}, true, false, 1},
		{"vbcc over c89", Modes{VBCC: true, C89: true}, Modes{VBCC: true, C99: true}, true, false, 1},
		{"amiga", Modes{Amiga: true}, Modes{Amiga: true, NDK: true, C89: true}, true, true, 1},
		{"dice", Modes{DICE: true}, Modes{DICE: true, C89: true, NDK: true}, true, false, 2},
		{"ndk", Modes{NDK: true}, Modes{NDK: true, C89: true}, true, false, 0},
		{"memsafe", Modes{MemSafe: true}, Modes{MemSafe: true, C89: true}, false, false, 1},
		{"memsafe with vbcc", Modes{MemSafe: true, VBCC: true}, Modes{MemSafe: true, VBCC: true, C89: true, C99: true}, true, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, notes, err := Resolve(tc.sel)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if r.Modes != tc.want {
				t.Fatalf("modes: want %+v, got %+v", tc.want, r.Modes)
			}
			if r.CompilerCompat != tc.compat || r.PascalCase != tc.pascal {
				t.Fatalf("derived flags: compat=%v pascal=%v", r.CompilerCompat, r.PascalCase)
			}
			if len(notes) != tc.notices {
				t.Fatalf("want %d notices, got %v", tc.notices, notes)
			}
		})
	}
}

func TestResolveConflict(t *testing.T) {
	if _, _, err := Resolve(Modes{SASC: true, VBCC: true}); !errors.Is(err, ErrConflictingModes) {
		t.Fatalf("expected ErrConflictingModes, got %v", err)
	}
}

func TestNoticeText(t *testing.T) {
	_, notes, _ := Resolve(Modes{SASC: true, C99: true})
	if got := notes[0].String(); got != "Warning: SAS/C mode overrides C99 mode (SAS/C is C89-only)" {
		t.Fatalf("unexpected notice %q", got)
	}
}

func TestSummary(t *testing.T) {
	r, _, _ := Resolve(Modes{Amiga: true, C99: true})
	if got := r.Summary(); got != "Amiga, NDK, C99" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := (Resolved{}).Summary(); got != "None (basic style checking only)" {
		t.Fatalf("unexpected empty summary %q", got)
	}
}

func TestTemplateLoadsAsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Path = path
	if cfg != want {
		t.Fatalf("template differs from defaults:\nwant %+v\ngot  %+v", want, cfg)
	}
}

func TestLoadOverridesAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "[modes]\namiga = true\n[limits]\nline_length = 80\n[tables]\npath = \"tables.toml\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Modes.Amiga || cfg.Limits.LineLength != 80 || cfg.Limits.MaxDiagnostics != 1000 {
		t.Fatalf("unexpected merge %+v", cfg)
	}
	if cfg.Tables.Path != filepath.Join(dir, "tables.toml") {
		t.Fatalf("tables path must resolve next to the config, got %q", cfg.Tables.Path)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[output]\nformat = \"xml\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected format error, got %v", err)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[modes]\nc11 = true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(unknown); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(Template), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find config, ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found wrong file %s", path)
	}
}
