package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/screens/apikey"
	"github.com/website1975/vatly12CTST/internal/screens/study"
	"github.com/website1975/vatly12CTST/internal/screens/welcome"
	"github.com/website1975/vatly12CTST/internal/store"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
)

// Options carries the services the UI runs on.
type Options struct {
	Content  study.Content
	Creds    *credential.Store
	Events   store.EventRepo
	Settings store.SettingsRepo
	Provider string
	Logger   *zap.Logger

	// SkipSplash opens the study screen directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	content study.Content
	status  layout.Status
	width   int
	height  int
}

// newAppModel creates the root model with the splash screen in front of
// the study screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	studyScreen := study.New(study.Deps{
		Content:  opts.Content,
		Creds:    opts.Creds,
		Events:   opts.Events,
		Settings: opts.Settings,
		Provider: opts.Provider,
		Logger:   opts.Logger,
	})

	var first screen.Screen = studyScreen
	if !opts.SkipSplash {
		first = welcome.New(func() screen.Screen { return studyScreen })
	}

	m := AppModel{
		router:  router.New(first),
		content: opts.Content,
		status:  layout.Status{Provider: opts.Provider},
	}
	m.refreshStatus()
	return m
}

func (m *AppModel) refreshStatus() {
	m.status.KeyReady = m.content.Configured(context.Background())
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
		return m, m.router.Update(msg)

	case tea.PasteMsg, tea.MouseMsg,
		router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		return m, m.router.Update(msg)

	case apikey.ChangedMsg:
		m.refreshStatus()
	}

	// Results of background work reach covered screens too.
	return m, m.router.Broadcast(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Phím bất kỳ", Description: "Bắt đầu"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
