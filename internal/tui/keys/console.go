package keys

import "github.com/charmbracelet/bubbles/key"

// ConsoleKeys drive the interactive console screen. Plain letters go to the
// command line, so quitting is chord-only; "bye" works too.
type ConsoleKeys struct {
	Enter       key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding
	Quit        key.Binding
}

func NewConsoleKeys() ConsoleKeys {
	return ConsoleKeys{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous command"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next command"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k ConsoleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.HistoryUp, k.Quit}
}

func (k ConsoleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.HistoryUp, k.HistoryDown},
		{k.Quit},
	}
}
