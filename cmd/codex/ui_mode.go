package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "", "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI needs more than one file; a single file has nothing to track.
func shouldUseTUI(mode uiMode, files int) bool {
	if files < 2 {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// applyColorFlag sets color.NoColor from --color. auto keeps the library's
// own terminal detection.
func applyColorFlag(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	on, auto, err := readColorMode(value)
	if err != nil {
		return err
	}
	if !auto {
		color.NoColor = !on
	}
	return nil
}

func readColorMode(value string) (on, auto bool, err error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return false, true, nil
	case "on":
		return true, false, nil
	case "off":
		return false, false, nil
	}
	return false, false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}
