// Package detector picks between the interactive and the line-oriented session.
package detector

import (
	"os"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for a scan session.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive terminal UI.
	ModeTUI
	// ModeLinear forces the line-oriented session used for pipes and CI.
	ModeLinear
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode. The TUI needs a
// terminal on both ends: keystrokes from stdin and a screen on stdout.
func DetectEnvironment() OutputMode {
	return detect(
		term.IsTerminal(int(os.Stdin.Fd())),
		term.IsTerminal(int(os.Stdout.Fd())),
		os.Getenv("CI"),
	)
}

func detect(stdinTTY, stdoutTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !stdinTTY || !stdoutTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --output flag to auto-detection.
// userFlag should be one of: "auto", "tui", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidOutput, "failed to resolve output mode"), "output", userFlag)
	}
}
