package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode says how results can be presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain is unstyled text, for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is styled text on a terminal that cannot host the TUI.
	OutputModeStyled
	// OutputModeInteractive is a full-screen Bubble Tea program.
	OutputModeInteractive
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// defaultTerminalWidth is used when the width cannot be determined.
const defaultTerminalWidth = 80

// DetectOutputMode picks the richest mode the environment supports.
// forcePlain or a non-terminal stdout give plain text; a terminal stdout
// without a terminal stdin cannot take key presses, so it gets styled text.
// Colour preferences do not change the mode; see ApplyColorPreference.
func DetectOutputMode(forcePlain bool) OutputMode {
	return detectOutputMode(forcePlain, isTerminal(os.Stdout), isTerminal(os.Stdin))
}

func detectOutputMode(forcePlain, stdoutTTY, stdinTTY bool) OutputMode {
	switch {
	case forcePlain || !stdoutTTY:
		return OutputModePlain
	case !stdinTTY:
		return OutputModeStyled
	default:
		return OutputModeInteractive
	}
}

// NoColorRequested reports whether noColor or NO_COLOR ask for uncoloured
// output.
func NoColorRequested(noColor bool) bool {
	return noColor || os.Getenv("NO_COLOR") != ""
}

// ApplyColorPreference drops every colour from lipgloss rendering when
// NoColorRequested. Bold and padding still apply.
func ApplyColorPreference(noColor bool) {
	if NoColorRequested(noColor) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// TerminalWidth returns the width of stdout, or a default.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
