package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-psu/internal/tui/styles"
)

const historyLimit = 100

// Input is the console command line: a single text field with shell-style
// history recall on the arrow keys.
type Input struct {
	textInput     textinput.Model
	history       []string
	historyIndex  int
	currentInput  string // input saved while navigating history
	terminalWidth int
}

func NewInput(placeholder string) *Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = "" // the console prompt is rendered separately
	ti.Focus()

	return &Input{
		textInput:    ti,
		history:      make([]string, 0),
		historyIndex: -1,
	}
}

func (i *Input) SetWidth(width int) {
	i.terminalWidth = width
	// border(2) + padding(2) + prompt text come out of the budget
	usable := width - 6
	if usable < 20 {
		usable = 20
	}
	i.textInput.Width = usable
}

func (i *Input) Focus() {
	i.textInput.Focus()
}

func (i *Input) Blur() {
	i.textInput.Blur()
}

func (i *Input) Value() string {
	return i.textInput.Value()
}

func (i *Input) Reset() {
	i.textInput.SetValue("")
	i.historyIndex = -1
	i.currentInput = ""
}

func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return i, cmd
}

// ViewWithPrompt renders the bordered command line with the console's
// current prompt in front of the text field.
func (i *Input) ViewWithPrompt(prompt string) string {
	styledPrompt := styles.PromptStyle.Render(prompt)
	content := lipgloss.JoinHorizontal(lipgloss.Left, styledPrompt, i.textInput.View())

	adjusted := i.terminalWidth - 4
	if adjusted < 10 {
		adjusted = 10
	}
	return styles.InputStyle.Width(adjusted).Render(content)
}

// AddToHistory records an executed command, skipping blanks and immediate
// repeats.
func (i *Input) AddToHistory(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	if len(i.history) > 0 && i.history[len(i.history)-1] == command {
		return
	}

	i.history = append(i.history, command)
	if len(i.history) > historyLimit {
		i.history = i.history[1:]
	}

	i.historyIndex = -1
	i.currentInput = ""
}

// NavigateHistoryUp recalls older commands. The first step saves whatever
// is currently typed so it can be restored on the way back down.
func (i *Input) NavigateHistoryUp() {
	if len(i.history) == 0 {
		return
	}

	if i.historyIndex == -1 {
		i.currentInput = i.textInput.Value()
		i.historyIndex = len(i.history) - 1
	} else if i.historyIndex > 0 {
		i.historyIndex--
	}

	i.textInput.SetValue(i.history[i.historyIndex])
	i.textInput.CursorEnd()
}

// NavigateHistoryDown moves towards newer commands and finally restores the
// saved in-progress input.
func (i *Input) NavigateHistoryDown() {
	if len(i.history) == 0 || i.historyIndex == -1 {
		return
	}

	if i.historyIndex < len(i.history)-1 {
		i.historyIndex++
		i.textInput.SetValue(i.history[i.historyIndex])
	} else {
		i.historyIndex = -1
		i.textInput.SetValue(i.currentInput)
		i.currentInput = ""
	}
	i.textInput.CursorEnd()
}
