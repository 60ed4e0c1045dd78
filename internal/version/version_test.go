package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestLine(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := Line(false); got != "codex 1.2.3" {
		t.Errorf("Line = %q", got)
	}

	GitCommit = "abc123"
	BuildDate = "2026-01-15"
	if got := Line(false); got != "codex 1.2.3 (abc123, 2026-01-15)" {
		t.Errorf("Line = %q", got)
	}
}

func TestColoredKeepsText(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })

	color.NoColor = true
	Version = "0.3.0-dev"
	if got := Colored(); got != "0.3.0-dev" {
		t.Errorf("Colored = %q", got)
	}
	Version = "weird"
	if got := Colored(); got != "weird" {
		t.Errorf("Colored = %q", got)
	}
}
