package models

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-psu"
	"github.com/allbin/go-psu/internal/tui/components"
	"github.com/allbin/go-psu/internal/tui/keys"
)

// Poller is the slice of the PSU driver the monitor screen needs.
type Poller interface {
	Open() error
	Close() error
	Identify() (string, error)
	Readings() (psu.Readings, error)
	Enable() (bool, error)
	Disable() (bool, error)
}

type tickMsg time.Time

type connectedMsg struct {
	identity string
	err      error
}

type sampleMsg components.Sample

type outputToggledMsg struct {
	err error
}

// MonitorModel polls the supply at a fixed interval and renders the samples
// in a table. The port stays open for the lifetime of the screen; the
// protocol is half-duplex, so polling and output toggling are serialized
// through the update loop.
type MonitorModel struct {
	dev      Poller
	device   string
	interval time.Duration

	table  *components.ReadingsTable
	status *components.StatusBar
	keys   keys.MonitorKeys
	help   help.Model

	connected   bool
	paused      bool
	polling     bool
	quitting    bool
	showHelp    bool
	lastEnabled bool
	ready       bool
	width       int
	height      int
}

func NewMonitor(dev Poller, device string, interval time.Duration) *MonitorModel {
	if interval <= 0 {
		interval = time.Second
	}
	return &MonitorModel{
		dev:      dev,
		device:   device,
		interval: interval,
		table:    components.NewReadingsTable(80, 20),
		status:   components.NewStatusBar(device),
		keys:     keys.NewMonitorKeys(),
		help:     help.New(),
	}
}

func (m *MonitorModel) Init() tea.Cmd {
	return m.connect()
}

func (m *MonitorModel) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.dev.Open(); err != nil {
			return connectedMsg{err: err}
		}
		id, err := m.dev.Identify()
		if err != nil || id == "" {
			m.dev.Close()
			return connectedMsg{err: fmt.Errorf("no supply answers on %s", m.device)}
		}
		return connectedMsg{identity: id}
	}
}

func (m *MonitorModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *MonitorModel) poll() tea.Cmd {
	return func() tea.Msg {
		r, err := m.dev.Readings()
		return sampleMsg(components.Sample{
			Timestamp: time.Now(),
			Readings:  r,
			Err:       err,
		})
	}
}

func (m *MonitorModel) toggleOutput() tea.Cmd {
	enabled := m.lastEnabled
	return func() tea.Msg {
		var err error
		if enabled {
			_, err = m.dev.Disable()
		} else {
			_, err = m.dev.Enable()
		}
		return outputToggledMsg{err: err}
	}
}

func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.SetWidth(msg.Width)
		m.help.Width = msg.Width
		// status bar and help line
		m.table.SetSize(msg.Width, msg.Height-2)
		m.ready = true
		return m, nil

	case connectedMsg:
		if msg.err != nil {
			m.status.SetDisconnected(msg.err)
			return m, nil
		}
		m.connected = true
		m.status.SetConnected(msg.identity)
		return m, m.tick()

	case tickMsg:
		if !m.connected {
			return m, nil
		}
		if m.paused || m.polling {
			return m, m.tick()
		}
		m.polling = true
		return m, m.poll()

	case sampleMsg:
		m.polling = false
		if m.quitting {
			m.dev.Close()
			return m, tea.Quit
		}
		s := components.Sample(msg)
		if s.Err == nil {
			m.lastEnabled = s.Readings.Enabled
		}
		m.table.Append(s)
		m.status.SetSample(s)
		return m, m.tick()

	case outputToggledMsg:
		m.polling = false
		if m.quitting {
			m.dev.Close()
			return m, tea.Quit
		}
		if msg.err != nil {
			m.status.SetDisconnected(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// The driver is single-goroutine; with a poll in flight the
			// port must not be closed under it. Quit once it returns.
			if m.polling {
				m.quitting = true
				return m, nil
			}
			if m.connected {
				m.dev.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.status.SetPaused(m.paused)
			m.table.SetFollow(!m.paused)
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.table.Clear()
			return m, nil

		case key.Matches(msg, m.keys.Output):
			if !m.connected || m.polling {
				return m, nil
			}
			m.polling = true
			return m, m.toggleOutput()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *MonitorModel) View() string {
	if !m.ready {
		return "Starting monitor..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.table.View(),
		m.help.View(m.keys),
		m.status.View(),
	)
}
