package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with an inline error line.
type TextInput struct {
	Model textinput.Model
	Err   string
}

// NewTextInput creates a focused text input. Secret inputs echo bullets.
func NewTextInput(placeholder string, secret bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init starts the cursor blink.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Typing clears the error line.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.Err = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetWidth sets the visible width of the field.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(max(w, 10))
}

// View renders the field and, when set, the error beneath it.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.Err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the value and the error.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.Err = ""
}

// Focus gives the field keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
