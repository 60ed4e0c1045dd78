// Package diagfmt renders diagnostics and run summaries.
package diagfmt

import (
	"fmt"

	"codex/internal/source"
)

// Format selects an output renderer.
type Format string

const (
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatSARIF  Format = "sarif"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatPretty, FormatJSON, FormatSARIF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected: text|pretty|json|sarif)", s)
}

// Machine reports whether the format is meant for tools; human-facing
// progress lines then go to stderr.
func (f Format) Machine() bool {
	return f == FormatJSON || f == FormatSARIF
}

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAsGiven prints paths the way they were passed in.
	PathModeAsGiven PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts "as-given", "absolute", "relative" and "basename".
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "", "as-given":
		return PathModeAsGiven, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	}
	return PathModeAsGiven, fmt.Errorf("unknown path mode %q", s)
}

func (m PathMode) apply(path, baseDir string) string {
	switch m {
	case PathModeAbsolute:
		return source.FormatPath(path, "absolute", baseDir)
	case PathModeRelative:
		return source.FormatPath(path, "relative", baseDir)
	case PathModeBasename:
		return source.FormatPath(path, "basename", baseDir)
	}
	return path
}

// Opts configure every renderer; fields a renderer does not use are ignored.
type Opts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// Max truncates the rendered list, not the sink. 0 means everything.
	Max int
	// Quiet drops the report header in text formats.
	Quiet bool
}

func (o Opts) limit(items int) int {
	if o.Max > 0 && o.Max < items {
		return o.Max
	}
	return items
}

// RunMeta describes the tool for SARIF output.
type RunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
