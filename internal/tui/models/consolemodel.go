package models

import (
	"bytes"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-psu/internal/console"
	"github.com/allbin/go-psu/internal/tui/components"
	"github.com/allbin/go-psu/internal/tui/keys"
	"github.com/allbin/go-psu/internal/tui/styles"
)

// execDoneMsg carries the interpreter output of one command line.
type execDoneMsg struct {
	output string
	quit   bool
}

// ConsoleModel is the interactive console screen: a transcript viewport,
// a command line with history and a status bar. All device I/O goes
// through the console interpreter, one command at a time.
//
// The interpreter runs on command goroutines and is not safe for concurrent
// use, so the model keeps its own prompt/connection snapshot: while a
// command is in flight (busy), Update and View touch only the snapshot, and
// the snapshot is refreshed from the interpreter solely in the execDoneMsg
// handler, after message delivery has synchronized the two goroutines.
type ConsoleModel struct {
	console *console.Console
	buf     *bytes.Buffer

	input  *components.Input
	log    *components.Log
	status *components.StatusBar
	keys   keys.ConsoleKeys

	device   string
	prompt   string   // snapshot of console.Prompt()
	pending  []string // startup commands still to run
	busy     bool
	quitting bool
	ready    bool
	width    int
	height   int
}

// NewConsole creates the console screen. A non-empty device is connected to
// on startup; the startup lines run afterwards, as if typed by hand.
func NewConsole(device string, startup []string, opts ...console.Option) *ConsoleModel {
	buf := &bytes.Buffer{}
	pending := make([]string, 0, len(startup)+1)
	if device != "" {
		pending = append(pending, "connect "+device)
	}
	pending = append(pending, startup...)

	return &ConsoleModel{
		console: console.New(buf, opts...),
		buf:     buf,
		input:   components.NewInput(`Enter a command, or "help"...`),
		log:     components.NewLog(80, 20),
		status:  components.NewStatusBar(device),
		keys:    keys.NewConsoleKeys(),
		device:  device,
		prompt:  console.DefaultPrompt,
		pending: pending,
	}
}

func (m *ConsoleModel) Init() tea.Cmd {
	return m.nextPending()
}

// nextPending runs the next queued startup command, if any.
func (m *ConsoleModel) nextPending() tea.Cmd {
	for len(m.pending) > 0 {
		line := m.pending[0]
		m.pending = m.pending[1:]
		if line == "" {
			continue
		}
		m.log.Echo(m.prompt, line)
		m.busy = true
		return m.exec(line)
	}
	return nil
}

// exec runs one command line through the interpreter off the update loop.
// The interpreter blocks on serial I/O, which is fine inside a tea.Cmd;
// until the execDoneMsg arrives, nothing else may touch m.console.
func (m *ConsoleModel) exec(line string) tea.Cmd {
	return func() tea.Msg {
		quit := m.console.Exec(line)
		output := m.buf.String()
		m.buf.Reset()
		return execDoneMsg{output: output, quit: quit}
	}
}

// refresh pulls the interpreter state into the model snapshot. Only called
// from the execDoneMsg handler.
func (m *ConsoleModel) refresh() {
	m.prompt = m.console.Prompt()
	if dev := m.console.Device(); dev != "" {
		m.status.SetDevice(dev)
	}
	if m.console.Connected() {
		m.status.SetConnected(m.console.Identity())
	} else {
		m.status.SetDisconnected(nil)
	}
}

func (m *ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		// input box takes three lines, the status bar one
		m.log.SetSize(msg.Width, msg.Height-4)
		m.ready = true
		return m, nil

	case execDoneMsg:
		m.busy = false
		m.log.Reply(msg.output)
		m.refresh()
		if msg.quit || m.quitting {
			m.console.Close()
			return m, tea.Quit
		}
		return m, m.nextPending()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// With a command in flight the interpreter may be mid-I/O;
			// finish the exchange and quit on its completion message.
			if m.busy {
				m.quitting = true
				return m, nil
			}
			m.console.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Enter):
			if m.busy {
				return m, nil
			}
			line := m.input.Value()
			m.input.AddToHistory(line)
			m.input.Reset()
			m.log.Echo(m.prompt, line)
			m.busy = true
			return m, m.exec(line)

		case key.Matches(msg, m.keys.HistoryUp):
			m.input.NavigateHistoryUp()
			return m, nil

		case key.Matches(msg, m.keys.HistoryDown):
			m.input.NavigateHistoryDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ConsoleModel) View() string {
	if !m.ready {
		return "Starting console..."
	}

	inputView := m.input.ViewWithPrompt(m.prompt)
	if m.busy {
		inputView = m.input.ViewWithPrompt(m.prompt + styles.HintStyle.Render("… "))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.log.View(),
		inputView,
		m.status.View(),
	)
}
