// Package tui renders installer prompts and notifications in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/DonovanMods/modkit/internal/install"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoActions is returned for prompts that offer nothing to choose
var ErrNoActions = errors.New("prompt has no actions")

// Prompter answers installer prompts with an interactive dialog
type Prompter struct {
	in   io.Reader
	out  io.Writer
	keys KeyMap
}

// NewPrompter creates a prompter reading keys from in and drawing to out
func NewPrompter(in io.Reader, out io.Writer, keys KeyMap) *Prompter {
	return &Prompter{in: in, out: out, keys: keys}
}

// Ask implements install.UserChoiceService
func (p *Prompter) Ask(ctx context.Context, prompt install.Prompt) (install.Choice, error) {
	if len(prompt.Actions) == 0 {
		return install.Choice{}, ErrNoActions
	}

	program := tea.NewProgram(
		NewDialog(prompt, p.keys),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return install.Choice{}, fmt.Errorf("running dialog: %w", err)
	}

	dialog, ok := final.(Dialog)
	if !ok || !dialog.Done() {
		return install.Choice{Action: prompt.Actions[0]}, nil
	}
	return dialog.Choice(), nil
}

// AutoChooser answers every prompt without interaction. It picks the
// preferred action when offered, otherwise the last action, and keeps
// checkbox defaults unless SelectAll is set.
type AutoChooser struct {
	Preferred []string
	SelectAll bool
}

// Ask implements install.UserChoiceService
func (a AutoChooser) Ask(_ context.Context, prompt install.Prompt) (install.Choice, error) {
	if len(prompt.Actions) == 0 {
		return install.Choice{}, ErrNoActions
	}

	action := prompt.Actions[len(prompt.Actions)-1]
	for _, pref := range a.Preferred {
		if slices.Contains(prompt.Actions, pref) {
			action = pref
			break
		}
	}

	input := make(map[string]bool, len(prompt.Checkboxes))
	for _, cb := range prompt.Checkboxes {
		input[cb.ID] = cb.Value || a.SelectAll
	}
	return install.Choice{Action: action, Input: input}, nil
}
