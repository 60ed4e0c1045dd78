package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = "codex.toml"

// Formats accepted by [output].format.
var Formats = []string{"text", "pretty", "json", "sarif"}

type Limits struct {
	LineLength     int `toml:"line_length"`
	MaxDiagnostics int `toml:"max_diagnostics"`
	PairingSpan    int `toml:"pairing_span"`
}

type Output struct {
	Format string `toml:"format"`
	Quiet  bool   `toml:"quiet"`
}

type Pairing struct {
	Disable string `toml:"disable"`
	Enable  string `toml:"enable"`
}

type TablesRef struct {
	Path string `toml:"path"`
}

// File mirrors codex.toml.
type File struct {
	Modes   Modes     `toml:"modes"`
	Limits  Limits    `toml:"limits"`
	Output  Output    `toml:"output"`
	Pairing Pairing   `toml:"pairing"`
	Tables  TablesRef `toml:"tables"`

	// Path is where the file was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Limits: Limits{
			LineLength:     256,
			MaxDiagnostics: 1000,
			PairingSpan:    5,
		},
		Output:  Output{Format: "text"},
		Pairing: Pairing{Disable: "Forbid", Enable: "Permit"},
	}
}

// Find walks up from startDir looking for codex.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (File, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("tables", "path") && cfg.Tables.Path != "" && !filepath.IsAbs(cfg.Tables.Path) {
		cfg.Tables.Path = filepath.Join(filepath.Dir(path), cfg.Tables.Path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (f File) Validate() error {
	if !slices.Contains(Formats, f.Output.Format) {
		return fmt.Errorf("unknown output format %q (want one of %v)", f.Output.Format, Formats)
	}
	if f.Limits.LineLength < 0 {
		return fmt.Errorf("[limits].line_length must not be negative")
	}
	if f.Limits.MaxDiagnostics < 0 {
		return fmt.Errorf("[limits].max_diagnostics must not be negative")
	}
	if f.Limits.PairingSpan < 0 {
		return fmt.Errorf("[limits].pairing_span must not be negative")
	}
	if (f.Pairing.Disable == "") != (f.Pairing.Enable == "") {
		return fmt.Errorf("[pairing] needs both disable and enable")
	}
	return nil
}

// Template is written by "codex init".
const Template = `# codex configuration

[modes]
# c89 is the default standard when nothing else implies one.
c89 = false
c99 = false
amiga = false    # Amiga types and PascalCase names, implies ndk
ndk = false      # compiler-specific.h reserved words
sasc = false     # implies c89, overrides c99
vbcc = false     # implies c99, overrides c89
dice = false     # implies c89 and ndk
memsafe = false  # unsafe libc calls, implies c89

[limits]
line_length = 256
max_diagnostics = 1000
pairing_span = 5

[pairing]
disable = "Forbid"
enable = "Permit"

[output]
format = "text"  # text | pretty | json | sarif
quiet = false

[tables]
path = ""        # optional TOML overriding keyword tables
`
