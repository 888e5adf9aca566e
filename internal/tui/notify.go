package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/DonovanMods/modkit/internal/install"

	"github.com/charmbracelet/lipgloss"
)

// Notifier prints installer notifications as styled lines
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier creates a notifier writing to out
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Notify implements install.NotificationSink
func (n *Notifier) Notify(note install.Notification) {
	color := lipgloss.Color("69")
	switch note.Type {
	case install.NotifySuccess:
		color = lipgloss.Color("82")
	case install.NotifyWarning:
		color = lipgloss.Color("214")
	case install.NotifyError:
		color = lipgloss.Color("196")
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(color).Render(note.Title)
	line := label
	if note.Message != "" {
		line = fmt.Sprintf("%s: %s", label, note.Message)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, line)
}
