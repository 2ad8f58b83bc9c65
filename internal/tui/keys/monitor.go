package keys

import "github.com/charmbracelet/bubbles/key"

// MonitorKeys drive the live readings screen.
type MonitorKeys struct {
	CommonKeys
	Pause  key.Binding
	Output key.Binding
	Clear  key.Binding
	Up     key.Binding
	Down   key.Binding
}

func NewMonitorKeys() MonitorKeys {
	return MonitorKeys{
		CommonKeys: NewCommonKeys(),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume polling"),
		),
		Output: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle output"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear samples"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

func (k MonitorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Output, k.Help, k.Quit}
}

func (k MonitorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Output, k.Clear},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
