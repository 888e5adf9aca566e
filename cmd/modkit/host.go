package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/DonovanMods/modkit/internal/install"
	"github.com/DonovanMods/modkit/internal/tui"

	"github.com/mattn/go-isatty"
)

// errNotInteractive is returned when a prompt is needed but stdin is not a terminal
var errNotInteractive = errors.New("stdin is not a terminal; use --yes to answer prompts automatically")

// cliHost connects the installer to the terminal
type cliHost struct {
	install.UserChoiceService
	install.NotificationSink
	state install.State
}

// State implements install.StateAccessor
func (h *cliHost) State() install.State {
	return h.state
}

// newHost creates a host for gameID. With yes set every prompt is accepted
// without interaction; otherwise prompts are shown as terminal dialogs.
func newHost(a *app, gameID string, yes bool, out io.Writer) *cliHost {
	var chooser install.UserChoiceService
	if yes {
		chooser = tui.AutoChooser{Preferred: []string{install.ActionContinue, install.ActionInstallAll}}
	} else {
		chooser = tui.NewPrompter(os.Stdin, out, tui.NewKeyMap(a.cfg.Keybindings))
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			chooser = noPrompts{}
		}
	}

	return &cliHost{
		UserChoiceService: chooser,
		NotificationSink:  tui.NewNotifier(out),
		state: install.State{
			GameID:    gameID,
			ProfileID: "default",
			Features:  a.cfg.Features,
		},
	}
}

// noPrompts fails any prompt; archives that need no decision still resolve
type noPrompts struct{}

func (noPrompts) Ask(context.Context, install.Prompt) (install.Choice, error) {
	return install.Choice{}, errNotInteractive
}
