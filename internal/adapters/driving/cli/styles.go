package cli

import "github.com/charmbracelet/lipgloss"

// Terminal palette.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourSuccess   = lipgloss.Color("#A6E3A1")
	colourError     = lipgloss.Color("#F38BA8")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(colourSecondary).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	successStyle = lipgloss.NewStyle().Foreground(colourSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colourError)
)
