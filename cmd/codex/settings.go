package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codex/internal/config"
	"codex/internal/diagfmt"
	"codex/internal/lint"
	"codex/internal/pairing"
	"codex/internal/rules"
)

// lintSettings is codex.toml merged with the command line.
type lintSettings struct {
	cfg            config.File
	modes          config.Resolved
	notices        []config.Notice
	tables         *rules.Tables
	format         diagfmt.Format
	quiet          bool
	maxDiagnostics int
	policy         lint.Policy
}

type modeFlag struct {
	name  string
	usage string
	field func(m *config.Modes) *bool
}

var modeFlags = []modeFlag{
	{"c89", "enforce C89 compliance", func(m *config.Modes) *bool { return &m.C89 }},
	{"c99", "enforce C99 compliance", func(m *config.Modes) *bool { return &m.C99 }},
	{"amiga", "Amiga types and PascalCase names (implies --ndk)", func(m *config.Modes) *bool { return &m.Amiga }},
	{"ndk", "flag NDK reserved words", func(m *config.Modes) *bool { return &m.NDK }},
	{"sasc", "SAS/C compatibility (implies --c89)", func(m *config.Modes) *bool { return &m.SASC }},
	{"vbcc", "VBCC compatibility (implies --c99)", func(m *config.Modes) *bool { return &m.VBCC }},
	{"dice", "DICE compatibility (implies --c89 and --ndk)", func(m *config.Modes) *bool { return &m.DICE }},
	{"memsafe", "flag unsafe library calls (implies --c89)", func(m *config.Modes) *bool { return &m.MemSafe }},
}

// addLintFlags registers the flags shared by check and verify.
func addLintFlags(cmd *cobra.Command) {
	for _, mf := range modeFlags {
		cmd.Flags().Bool(mf.name, false, mf.usage)
	}
	cmd.Flags().String("format", "", "output format (text|pretty|json|sarif)")
	cmd.Flags().Int("line-length", 0, "maximum line length (0 = from config)")
	cmd.Flags().Int("pairing-span", 0, "maximum lines between Forbid() and Permit() (0 = from config)")
	cmd.Flags().String("tables", "", "TOML file overriding the keyword tables")
	cmd.Flags().String("policy", "first", "diagnostics per line (first|all)")
}

// loadSettings reads the config file, applies flags explicitly set on the
// command line and resolves the modes.
func loadSettings(cmd *cobra.Command) (*lintSettings, error) {
	cfg, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	for _, mf := range modeFlags {
		if !flags.Changed(mf.name) {
			continue
		}
		v, err := flags.GetBool(mf.name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", mf.name, err)
		}
		*mf.field(&cfg.Modes) = v
	}
	if flags.Changed("line-length") {
		if cfg.Limits.LineLength, err = flags.GetInt("line-length"); err != nil {
			return nil, fmt.Errorf("failed to get line-length flag: %w", err)
		}
	}
	if flags.Changed("pairing-span") {
		if cfg.Limits.PairingSpan, err = flags.GetInt("pairing-span"); err != nil {
			return nil, fmt.Errorf("failed to get pairing-span flag: %w", err)
		}
	}
	if flags.Changed("format") {
		if cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return nil, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if flags.Changed("tables") {
		if cfg.Tables.Path, err = flags.GetString("tables"); err != nil {
			return nil, fmt.Errorf("failed to get tables flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &lintSettings{cfg: cfg, quiet: cfg.Output.Quiet}
	if s.format, err = diagfmt.ParseFormat(cfg.Output.Format); err != nil {
		return nil, err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	s.quiet = s.quiet || quiet

	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.maxDiagnostics = cfg.Limits.MaxDiagnostics
	if maxDiag > 0 {
		s.maxDiagnostics = maxDiag
	}

	policyStr, err := flags.GetString("policy")
	if err != nil {
		return nil, fmt.Errorf("failed to get policy flag: %w", err)
	}
	policy, ok := lint.ParsePolicy(policyStr)
	if !ok {
		return nil, fmt.Errorf("invalid --policy value %q (expected first|all)", policyStr)
	}
	s.policy = policy

	if cfg.Tables.Path != "" {
		if s.tables, err = rules.LoadFile(cfg.Tables.Path); err != nil {
			return nil, err
		}
	} else {
		s.tables = rules.Default()
	}

	if s.modes, s.notices, err = config.Resolve(cfg.Modes); err != nil {
		return nil, err
	}
	return s, nil
}

// loadConfigFile honours --config, then codex.toml found upwards from the
// working directory, then the built-in defaults.
func loadConfigFile(cmd *cobra.Command) (config.File, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.File{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.File{}, err
		}
		found, ok, err := config.Find(wd)
		if err != nil {
			return config.File{}, err
		}
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

func (s *lintSettings) engineOptions(noMarkers bool) lint.Options {
	return lint.Options{
		Modes:      s.modes,
		Tables:     s.tables,
		LineLength: s.cfg.Limits.LineLength,
		Pairing: pairing.Options{
			Disable: s.cfg.Pairing.Disable,
			Enable:  s.cfg.Pairing.Enable,
			MaxSpan: s.cfg.Limits.PairingSpan,
		},
		Policy:    s.policy,
		NoMarkers: noMarkers,
	}
}
