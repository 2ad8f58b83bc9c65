package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/allbin/go-psu/internal/tui/styles"
)

// Log is the scrollback transcript of the console screen: echoed commands
// and the interpreter's replies.
type Log struct {
	viewport viewport.Model
	lines    []string
}

func NewLog(width, height int) *Log {
	return &Log{
		viewport: viewport.New(width, height),
		lines:    make([]string, 0),
	}
}

func (l *Log) SetSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// Echo records an entered command together with the prompt it was typed at.
func (l *Log) Echo(prompt, command string) {
	line := styles.PromptStyle.Render(prompt) + styles.EchoStyle.Render(command)
	l.lines = append(l.lines, line)
	l.refresh()
}

// Reply records interpreter output. Multi-line output is split so the
// viewport scrolls by screen lines.
func (l *Log) Reply(output string) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		l.lines = append(l.lines, styles.ReplyStyle.Render(line))
	}
	l.refresh()
}

func (l *Log) Clear() {
	l.lines = l.lines[:0]
	l.viewport.SetContent("")
}

func (l *Log) refresh() {
	l.viewport.SetContent(strings.Join(l.lines, "\n"))
	l.viewport.GotoBottom()
}

// Update forwards only sizing to the viewport; key events belong to the
// command line.
func (l *Log) Update(msg tea.Msg) (viewport.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.WindowSizeMsg:
		return l.viewport.Update(msg)
	default:
		return l.viewport, nil
	}
}

func (l *Log) View() string {
	return l.viewport.View()
}
