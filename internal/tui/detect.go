package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and redirects.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// IsTTY reports whether both stdin and stdout are terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks the output mode for the current process.
// plain forces OutputModePlain; noInteractive caps the result at OutputModeStyled.
// NO_COLOR and TERM=dumb disable styling.
func DetectOutputMode(plain, noInteractive bool) OutputMode {
	return detectOutputMode(plain, noInteractive, IsTTY(), os.Getenv("NO_COLOR") != "", os.Getenv("TERM"))
}

func detectOutputMode(plain, noInteractive, tty, noColor bool, termName string) OutputMode {
	if plain || !tty || noColor || termName == "dumb" {
		return OutputModePlain
	}
	if noInteractive {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
