package components

import (
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// Button renders a labelled action with its key.
type Button struct {
	Key    string
	Label  string
	Active bool
}

// NewButton creates a button.
func NewButton(key, label string, active bool) Button {
	return Button{Key: key, Label: label, Active: active}
}

// View renders the button. Inactive buttons are dimmed.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
