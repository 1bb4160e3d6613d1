package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/website1975/vatly12CTST/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that can hold keyboard focus in
// a text field. While CapturesInput is true the app forwards Esc to the
// screen instead of navigating back.
type InputCapturer interface {
	CapturesInput() bool
}
