package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// An atom: nucleus and three electron orbits.
const atomArt = `      ╭─────────╮
   ╭──┼──╮   ╭──┼──╮
   │  │  ╰─●─╯  │  │
   │  ╰───(+)───╯  │
   │  ╭───────╮    │
   ╰──┼───────┼────╯
      ╰───────╯`

// electron frames cycle around the atom
var electronFrames = []string{"•", "∘"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the
// screen produced by next. Any key skips the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will be replaced by next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(atomArt)

	// Phase 2+: electrons blink on the orbits
	if w.elapsed >= phase1End {
		e := electronFrames[w.tickCount%len(electronFrames)]
		accent := lipgloss.NewStyle().Foreground(theme.Accent).Render(e)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = accent + " " + lines[1]
		}
		if len(lines) > 5 {
			lines[5] = lines[5] + " " + accent
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner, tagline and hint
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Chân Trời Sáng Tạo"))

		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("nhấn phím bất kỳ để bắt đầu"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
