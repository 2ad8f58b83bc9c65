package colors

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the palette shared by all psuctl TUI screens.
var (
	Base     = lipgloss.Color("#1e1e2e") // dark background
	Surface0 = lipgloss.Color("#313244") // status bar background
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70") // borders, dividers
	Overlay0 = lipgloss.Color("#6c7086") // hints, placeholders
	Subtext0 = lipgloss.Color("#a6adc8") // secondary text
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4") // main text

	Blue   = lipgloss.Color("#89b4fa") // constant voltage
	Sky    = lipgloss.Color("#89dceb") // replies from the supply
	Teal   = lipgloss.Color("#94e2d5")
	Green  = lipgloss.Color("#a6e3a1") // output on, connected
	Yellow = lipgloss.Color("#f9e2af") // connecting, paused
	Peach  = lipgloss.Color("#fab387") // constant current
	Red    = lipgloss.Color("#f38ba8") // output off, errors
	Mauve  = lipgloss.Color("#cba6f7") // device identity
)
