// Package detector decides how trace output is presented.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how trace output is rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTTY renders with the terminal's full color support.
	ModeTTY
	// ModeCI renders plain ANSI suitable for CI logs.
	ModeCI
)

// DetectEnvironment returns the recommended output mode.
// Traces go to stderr, so stderr is checked for a terminal.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeCI
	}
	return ModeTTY
}

// ResolveMode applies the user's --trace value to the detected mode.
// userFlag should be one of "auto", "tty", "ci", "linear" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tty":
		return ModeTTY
	case "ci", "linear":
		return ModeCI
	default:
		return autoDetected
	}
}
