package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	colorAccent = lipgloss.Color("39")
	colorSubtle = lipgloss.Color("241")
	colorText   = lipgloss.Color("252")
	colorButton = lipgloss.Color("236")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values shared by all views.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorText)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	TableCellStyle   = lipgloss.NewStyle().Foreground(colorText)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(colorButton).
			Foreground(colorText)
	FocusedButtonStyle = ButtonStyle.
				Background(colorAccent).
				Bold(true)
)
