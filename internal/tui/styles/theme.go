package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-psu/internal/tui/colors"
)

var (
	// TitleStyle renders the device identity in headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Prompt and transcript styles for the console screen.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Green)

	EchoStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext1)

	ReplyStyle = lipgloss.NewStyle().
			Foreground(colors.Sky)

	// Output state badges.
	OutputOnStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Green).
			Bold(true).
			Padding(0, 1)

	OutputOffStyle = lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Red).
			Bold(true).
			Padding(0, 1)

	// Regulation mode badges.
	ModeCVStyle = lipgloss.NewStyle().
			Foreground(colors.Blue).
			Bold(true)

	ModeCCStyle = lipgloss.NewStyle().
			Foreground(colors.Peach).
			Bold(true)

	// Input field of the console screen.
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	HintStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0)
)

// OutputBadge renders the ON/OFF badge for the output state.
func OutputBadge(enabled bool) string {
	if enabled {
		return OutputOnStyle.Render("ON")
	}
	return OutputOffStyle.Render("OFF")
}

// ModeBadge renders the CV/CC regulation mode indicator. An unknown mode
// (closed session, no supply) renders as a dash.
func ModeBadge(mode string) string {
	switch mode {
	case "CV":
		return ModeCVStyle.Render("CV")
	case "CC":
		return ModeCCStyle.Render("CC")
	default:
		return HintStyle.Render("--")
	}
}
