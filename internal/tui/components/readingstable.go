package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/allbin/go-psu/internal/tui/colors"
)

const (
	columnKeyTime   = "time"
	columnKeyVolt   = "volt"
	columnKeyAmps   = "amps"
	columnKeyOutput = "output"
	columnKeyMode   = "mode"

	// sampleLimit caps the scrollback; at a 1s poll interval this is
	// roughly half an hour of readings.
	sampleLimit = 2000
)

// ReadingsTable is the scrolling table of polled samples on the monitor
// screen. In follow mode the newest sample stays highlighted.
type ReadingsTable struct {
	table   table.Model
	samples []Sample
	follow  bool
}

func NewReadingsTable(width, height int) *ReadingsTable {
	columns := []table.Column{
		table.NewColumn(columnKeyTime, "Time", 12),
		table.NewColumn(columnKeyVolt, "Voltage", 12),
		table.NewColumn(columnKeyAmps, "Current", 12),
		table.NewColumn(columnKeyOutput, "Output", 8),
		table.NewColumn(columnKeyMode, "Mode", 6),
	}

	base := lipgloss.NewStyle().
		Foreground(colors.Text).
		BorderForeground(colors.Surface2).
		Align(lipgloss.Right)

	t := table.New(columns).
		WithBaseStyle(base).
		WithTargetWidth(width).
		WithPageSize(pageSize(height)).
		Focused(true)

	return &ReadingsTable{
		table:   t,
		samples: make([]Sample, 0),
		follow:  true,
	}
}

func pageSize(height int) int {
	// header and borders take four lines
	size := height - 4
	if size < 3 {
		size = 3
	}
	return size
}

func (rt *ReadingsTable) SetSize(width, height int) {
	rt.table = rt.table.
		WithTargetWidth(width).
		WithPageSize(pageSize(height))
	rt.refresh()
}

// Append records a sample and, in follow mode, keeps the view pinned to it.
func (rt *ReadingsTable) Append(s Sample) {
	rt.samples = append(rt.samples, s)
	if len(rt.samples) > sampleLimit {
		rt.samples = rt.samples[len(rt.samples)-sampleLimit:]
	}
	rt.refresh()
}

func (rt *ReadingsTable) Clear() {
	rt.samples = rt.samples[:0]
	rt.refresh()
}

// SetFollow toggles between pinning the newest sample and free scrolling.
func (rt *ReadingsTable) SetFollow(follow bool) {
	rt.follow = follow
	rt.refresh()
}

func (rt *ReadingsTable) refresh() {
	rows := make([]table.Row, len(rt.samples))
	for i, s := range rt.samples {
		rows[i] = sampleRow(s)
	}
	rt.table = rt.table.WithRows(rows)
	if rt.follow && len(rows) > 0 {
		rt.table = rt.table.WithHighlightedRow(len(rows) - 1)
	}
}

func sampleRow(s Sample) table.Row {
	timestamp := s.Timestamp.Format("15:04:05.000")

	if s.Err != nil {
		errStyle := lipgloss.NewStyle().Foreground(colors.Red)
		return table.NewRow(table.RowData{
			columnKeyTime:   timestamp,
			columnKeyVolt:   table.NewStyledCell("-", errStyle),
			columnKeyAmps:   table.NewStyledCell("-", errStyle),
			columnKeyOutput: table.NewStyledCell("ERR", errStyle),
			columnKeyMode:   table.NewStyledCell("-", errStyle),
		})
	}

	r := s.Readings
	output := "OFF"
	outputStyle := lipgloss.NewStyle().Foreground(colors.Red)
	if r.Enabled {
		output = "ON"
		outputStyle = lipgloss.NewStyle().Foreground(colors.Green)
	}

	modeStyle := lipgloss.NewStyle().Foreground(colors.Peach)
	if r.Mode == "CV" {
		modeStyle = lipgloss.NewStyle().Foreground(colors.Blue)
	}

	return table.NewRow(table.RowData{
		columnKeyTime:   timestamp,
		columnKeyVolt:   fmt.Sprintf("%.2f V", r.Volt),
		columnKeyAmps:   fmt.Sprintf("%.3f A", r.Amps),
		columnKeyOutput: table.NewStyledCell(output, outputStyle),
		columnKeyMode:   table.NewStyledCell(string(r.Mode), modeStyle),
	})
}

func (rt *ReadingsTable) Update(msg tea.Msg) (*ReadingsTable, tea.Cmd) {
	var cmd tea.Cmd
	rt.table, cmd = rt.table.Update(msg)
	return rt, cmd
}

func (rt *ReadingsTable) View() string {
	return rt.table.View()
}
