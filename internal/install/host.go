package install

import "context"

// DialogType selects how a prompt is presented
type DialogType string

const (
	DialogInfo     DialogType = "info"
	DialogError    DialogType = "error"
	DialogQuestion DialogType = "question"
)

// Dialog action labels
const (
	ActionCancel              = "Cancel"
	ActionCancelInstall       = "Cancel Install"
	ActionContinue            = "Continue"
	ActionContinueUnsupported = "Continue (unsupported)"
	ActionInstallSelected     = "Install Selected"
	ActionInstallAll          = "Install All"
)

// Checkbox is a toggleable entry in a prompt
type Checkbox struct {
	ID    string
	Text  string
	Value bool // Initial state
}

// Prompt is a modal question shown to the user
type Prompt struct {
	Type       DialogType
	Title      string
	Text       string
	Checkboxes []Checkbox
	Actions    []string
}

// Choice is the user's answer to a Prompt
type Choice struct {
	Action string
	Input  map[string]bool // Checkbox ID -> checked
}

// Selected returns the IDs of checked boxes in prompt order
func (c Choice) Selected(p Prompt) []string {
	var ids []string
	for _, cb := range p.Checkboxes {
		if c.Input[cb.ID] {
			ids = append(ids, cb.ID)
		}
	}
	return ids
}

// UserChoiceService shows a prompt and blocks until the user answers
type UserChoiceService interface {
	Ask(ctx context.Context, p Prompt) (Choice, error)
}

// NotificationType is the severity of a notification
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a fire-and-forget message for the user
type Notification struct {
	Type    NotificationType
	Title   string
	Message string
}

// NotificationSink receives notifications without blocking the installer
type NotificationSink interface {
	Notify(n Notification)
}

// State is the host state visible to extender predicates and support checks
type State struct {
	GameID    string         // Active game
	ProfileID string         // Active profile
	Features  map[string]any // Profile features
}

// Feature returns a profile feature value
func (s State) Feature(key string) (any, bool) {
	v, ok := s.Features[key]
	return v, ok
}

// FeatureEnabled returns true if a feature is set to a truthy value
func (s State) FeatureEnabled(key string) bool {
	v, ok := s.Features[key]
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false" && val != "0"
	case int:
		return val != 0
	default:
		return v != nil
	}
}

// StateAccessor exposes the current host state
type StateAccessor interface {
	State() State
}

// Host is everything the installer needs from the host application
type Host interface {
	UserChoiceService
	NotificationSink
	StateAccessor
}
