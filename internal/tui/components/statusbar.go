package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-psu/internal/tui/colors"
	"github.com/allbin/go-psu/internal/tui/styles"
)

// StatusBar is the bottom line of both TUI screens: identity and port on
// the left, supply state and last poll time on the right.
type StatusBar struct {
	device    string
	identity  string
	connected bool
	paused    bool
	err       error
	width     int
	sample    *Sample
}

func NewStatusBar(device string) *StatusBar {
	return &StatusBar{device: device}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConnected(identity string) {
	sb.identity = identity
	sb.connected = true
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	sb.identity = ""
	sb.connected = false
	sb.err = err
}

func (sb *StatusBar) SetDevice(device string) {
	sb.device = device
}

func (sb *StatusBar) SetPaused(paused bool) {
	sb.paused = paused
}

func (sb *StatusBar) SetSample(s Sample) {
	sb.sample = &s
}

func (sb *StatusBar) connectionIndicator() string {
	switch {
	case sb.err != nil:
		return lipgloss.NewStyle().Foreground(colors.Red).Render("✗")
	case sb.connected:
		return lipgloss.NewStyle().Foreground(colors.Green).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(colors.Red).Render("○")
	}
}

func (sb *StatusBar) View() string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	identity := sb.identity
	if identity == "" {
		identity = "PSU"
	}
	title := styles.TitleStyle.Render(identity)

	portStyle := lipgloss.NewStyle().Foreground(colors.Subtext0).Padding(0, 1)
	device := sb.device
	if device == "" {
		device = "no port"
	}
	port := portStyle.Render(device)

	left := lipgloss.JoinHorizontal(lipgloss.Left, title, port, sb.connectionIndicator())

	if sb.paused {
		pausedStyle := lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Yellow).
			Bold(true).
			Padding(0, 1)
		left = lipgloss.JoinHorizontal(lipgloss.Left, left, " ", pausedStyle.Render("PAUSED"))
	}

	var right string
	if sb.sample != nil {
		divider := lipgloss.NewStyle().Foreground(colors.Surface2).Padding(0, 1).Render("│")
		timeStyle := lipgloss.NewStyle().Foreground(colors.Subtext1).Padding(0, 1)

		if sb.sample.Err != nil {
			right = lipgloss.JoinHorizontal(lipgloss.Left,
				styles.ErrorStyle.Render(fmt.Sprintf("poll failed: %v", sb.sample.Err)),
				divider,
				timeStyle.Render(sb.sample.Timestamp.Format("15:04:05")),
			)
		} else {
			r := sb.sample.Readings
			valueStyle := lipgloss.NewStyle().Foreground(colors.Text).Padding(0, 1)
			right = lipgloss.JoinHorizontal(lipgloss.Left,
				valueStyle.Render(FormatVolt(r.Volt)),
				valueStyle.Render(FormatAmps(r.Amps)),
				styles.OutputBadge(r.Enabled),
				" ",
				styles.ModeBadge(string(r.Mode)),
				divider,
				timeStyle.Render(sb.sample.Timestamp.Format("15:04:05")),
			)
		}
	}

	spacerWidth := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	bar := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(width)

	return bar.Render(lipgloss.JoinHorizontal(lipgloss.Left, left, spacer, right))
}
