// Package apikey is the overlay where the learner enters, replaces or
// clears the saved API key.
package apikey

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/ui/components"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// ChangedMsg is broadcast after the saved key was written or removed.
type ChangedMsg struct {
	Cleared bool
}

type savedMsg struct{ err error }

type clearedMsg struct{ err error }

// Entry error messages.
const (
	msgEmpty      = "Vui lòng nhập API Key"
	msgSaveFailed = "Không thể lưu API Key. Vui lòng thử lại."
)

func invalidMsg(prefix string) string {
	return "API Key không hợp lệ (phải bắt đầu bằng " + prefix + "...)"
}

// Provider describes the key being asked for.
type Provider struct {
	Label string // field label, e.g. "Google AI Studio Key"
	Link  string // where to get a key
}

var providers = map[string]Provider{
	"gemini":     {Label: "Google AI Studio Key", Link: "https://aistudio.google.com/app/apikey"},
	"anthropic":  {Label: "Anthropic API Key", Link: "https://console.anthropic.com/settings/keys"},
	"openai":     {Label: "OpenAI API Key", Link: "https://platform.openai.com/api-keys"},
	"openrouter": {Label: "OpenRouter API Key", Link: "https://openrouter.ai/keys"},
}

// ProviderFor returns the labels for the named LLM provider.
func ProviderFor(name string) Provider {
	if p, ok := providers[name]; ok {
		return p
	}
	return Provider{Label: "API Key"}
}

// APIKeyScreen collects a key, validates its format and saves it.
type APIKeyScreen struct {
	creds    *credential.Store
	provider Provider
	input    components.TextInput
	status   string
	busy     bool

	current string
	source  credential.Source
}

var _ screen.Screen = (*APIKeyScreen)(nil)

// New creates the overlay for creds.
func New(creds *credential.Store, p Provider) *APIKeyScreen {
	s := &APIKeyScreen{
		creds:    creds,
		provider: p,
		input:    components.NewTextInput(placeholder(creds.Prefix()), true, 256),
	}
	s.refresh()
	return s
}

func placeholder(prefix string) string {
	switch prefix {
	case "":
		return "API Key"
	case "AIza":
		return "AIzaSyD..."
	}
	return prefix + "..."
}

func (s *APIKeyScreen) refresh() {
	ctx := context.Background()
	s.current = s.creds.Read(ctx)
	s.source = s.creds.Source(ctx)
}

func (s *APIKeyScreen) Title() string { return "Nhập API Key" }

func (s *APIKeyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *APIKeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Lưu"},
		{Key: "Ctrl+X", Description: "Xóa key đã lưu"},
		{Key: "Esc", Description: "Đóng"},
	}
}

func (s *APIKeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.busy = false
		if msg.err != nil {
			s.input.Err = msgSaveFailed
			return s, nil
		}
		s.input.Reset()
		s.refresh()
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return ChangedMsg{} },
		)

	case clearedMsg:
		s.busy = false
		if msg.err != nil {
			s.input.Err = msgSaveFailed
			return s, nil
		}
		s.status = "Đã xóa API Key đã lưu."
		s.refresh()
		return s, func() tea.Msg { return ChangedMsg{Cleared: true} }

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "ctrl+x":
			s.busy = true
			s.status = ""
			return s, s.clear()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *APIKeyScreen) submit() tea.Cmd {
	value := strings.TrimSpace(s.input.Value())
	if err := s.creds.ValidateFormat(value); err != nil {
		switch {
		case errors.Is(err, credential.ErrEmpty):
			s.input.Err = msgEmpty
		default:
			s.input.Err = invalidMsg(s.creds.Prefix())
		}
		return nil
	}

	s.busy = true
	creds := s.creds
	return func() tea.Msg {
		return savedMsg{err: creds.Save(context.Background(), value)}
	}
}

func (s *APIKeyScreen) clear() tea.Cmd {
	creds := s.creds
	return func() tea.Msg {
		return clearedMsg{err: creds.Clear(context.Background())}
	}
}

func (s *APIKeyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Để sử dụng ứng dụng, bạn cần cung cấp API Key của mình."))
	b.WriteString("\n\n")

	if s.current != "" {
		src := "mặc định"
		if s.source == credential.SourceUser {
			src = "đã lưu"
		}
		b.WriteString(theme.Hint.Render("Đang dùng: " + credential.Mask(s.current) + " (" + src + ")"))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Strong.Render(strings.ToUpper(s.provider.Label)))
	b.WriteString("\n")
	s.input.SetWidth(min(width-16, 56))
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if s.status != "" {
		b.WriteString(theme.Correct.Render("✓ " + s.status))
		b.WriteString("\n\n")
	}

	b.WriteString(components.NewButton("Enter", "Lưu & Bắt đầu học", !s.busy).View())

	if s.provider.Link != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Chưa có Key? Lấy miễn phí tại: " + s.provider.Link))
	}

	return layout.RenderOverlay(s.Title(), b.String(), width, height)
}
