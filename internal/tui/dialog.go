package tui

import (
	"fmt"
	"strings"

	"github.com/DonovanMods/modkit/internal/install"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dialog is a modal prompt with optional checkboxes and a row of actions.
// Escape answers with the first action, which is always the cancel action.
type Dialog struct {
	prompt  install.Prompt
	checked []bool
	cursor  int // Checkbox under the cursor
	action  int // Highlighted action
	done    bool
	keys    KeyMap
	help    help.Model
	width   int
}

// NewDialog creates a dialog for p
func NewDialog(p install.Prompt, keys KeyMap) Dialog {
	checked := make([]bool, len(p.Checkboxes))
	for i, cb := range p.Checkboxes {
		checked[i] = cb.Value
	}
	return Dialog{
		prompt:  p,
		checked: checked,
		keys:    keys,
		help:    help.New(),
		width:   80,
	}
}

// Done reports whether the user has answered
func (d Dialog) Done() bool {
	return d.done
}

// Cursor returns the checkbox under the cursor
func (d Dialog) Cursor() int {
	return d.cursor
}

// Action returns the highlighted action label
func (d Dialog) Action() string {
	if len(d.prompt.Actions) == 0 {
		return ""
	}
	return d.prompt.Actions[d.action]
}

// Choice returns the answer: the highlighted action and every checkbox state
func (d Dialog) Choice() install.Choice {
	input := make(map[string]bool, len(d.checked))
	for i, cb := range d.prompt.Checkboxes {
		input[cb.ID] = d.checked[i]
	}
	return install.Choice{Action: d.Action(), Input: input}
}

// Init implements tea.Model
func (d Dialog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.help.Width = msg.Width
		return d, nil
	}

	return d, nil
}

func (d Dialog) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.done {
		return d, nil
	}

	switch {
	case key.Matches(msg, d.keys.Cancel):
		d.action = 0
		d.done = true
		return d, tea.Quit

	case key.Matches(msg, d.keys.Confirm):
		d.done = true
		return d, tea.Quit

	case key.Matches(msg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}

	case key.Matches(msg, d.keys.Down):
		if d.cursor < len(d.checked)-1 {
			d.cursor++
		}

	case key.Matches(msg, d.keys.Home):
		d.cursor = 0

	case key.Matches(msg, d.keys.End):
		d.cursor = max(len(d.checked)-1, 0)

	case key.Matches(msg, d.keys.Toggle):
		if len(d.checked) > 0 {
			d.checked[d.cursor] = !d.checked[d.cursor]
		}

	case key.Matches(msg, d.keys.Left):
		if n := len(d.prompt.Actions); n > 0 {
			d.action = (d.action - 1 + n) % n
		}

	case key.Matches(msg, d.keys.Right):
		if n := len(d.prompt.Actions); n > 0 {
			d.action = (d.action + 1) % n
		}

	case key.Matches(msg, d.keys.Help):
		d.help.ShowAll = !d.help.ShowAll
	}

	return d, nil
}

// View implements tea.Model
func (d Dialog) View() string {
	titleColor := lipgloss.Color("69")
	switch d.prompt.Type {
	case install.DialogError:
		titleColor = lipgloss.Color("196")
	case install.DialogQuestion:
		titleColor = lipgloss.Color("205")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		MarginBottom(1)

	textStyle := lipgloss.NewStyle().
		Width(max(d.width-4, 20))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	actionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)

	activeActionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("205")).
		Bold(true).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.prompt.Title) + "\n\n")
	if d.prompt.Text != "" {
		b.WriteString(textStyle.Render(d.prompt.Text) + "\n\n")
	}

	for i, cb := range d.prompt.Checkboxes {
		mark := "[ ]"
		if d.checked[i] {
			mark = "[x]"
		}
		cursor := "  "
		style := itemStyle
		if i == d.cursor {
			cursor = "▸ "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, mark, cb.Text)) + "\n")
	}
	if len(d.prompt.Checkboxes) > 0 {
		b.WriteString("\n")
	}

	actions := make([]string, len(d.prompt.Actions))
	for i, a := range d.prompt.Actions {
		if i == d.action {
			actions[i] = activeActionStyle.Render(a)
		} else {
			actions[i] = actionStyle.Render(a)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, actions...) + "\n\n")
	b.WriteString(d.help.View(d.keys))

	return b.String()
}
