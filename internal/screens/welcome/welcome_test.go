package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "study" }
func (s *stubScreen) Title() string                          { return "Study" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	next := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(next), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	var s screen.Screen = w
	for i := 0; i < n; i++ {
		s, _ = s.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "Chân Trời Sáng Tạo") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != phase2End {
		t.Errorf("expected elapsed %v, got %v", phase2End, w.elapsed)
	}

	view := w.View(100, 30)
	if !strings.Contains(view, "Chân Trời Sáng Tạo") {
		t.Error("tagline should be visible after phase 2")
	}
	if !strings.Contains(view, "██") {
		t.Error("wide terminals should get the block banner")
	}
}

func TestCompactBanner(t *testing.T) {
	w, _ := newTestWelcome()
	sendTicks(w, 20)
	if !strings.Contains(w.View(60, 30), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}

func TestKeypressDuringAnimationSkips(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replace.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("next should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("next should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTransitionOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("next should be called exactly once, got %d", *callCount)
	}

	_, cmd = w.Update(tickMsg(time.Now()))
	if cmd != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
