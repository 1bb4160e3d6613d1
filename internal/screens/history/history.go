package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/store"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []store.QuizAttemptRecord
	Stats    map[string]store.LessonQuizStat // lessonID → stats
	Err      error
}

// HistoryScreen displays past quiz attempts and per-lesson totals.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.QuizAttemptRecord
	stats     map[string]store.LessonQuizStat
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.QueryQuizAttempts(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Per-lesson totals are optional decoration.
		byLesson := make(map[string]store.LessonQuizStat)
		stats, err := repo.QuizStatsByLesson(ctx)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts, Stats: byLesson}
		}
		for _, st := range stats {
			byLesson[st.LessonID] = st
		}

		return historyLoadedMsg{Attempts: attempts, Stats: byLesson}
	}
}

func (s *HistoryScreen) Title() string {
	return "Lịch sử làm bài"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chi tiết"},
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "h", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nLỗi: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Đang tải lịch sử...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Chưa có bài trắc nghiệm nào. Hãy bắt đầu luyện tập!")
	}

	var b strings.Builder
	b.WriteString("\n")

	titleWidth := max(width-40, 20)

	for i, a := range s.attempts {
		dateStr := a.Timestamp.Local().Format("02/01/2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		title := a.LessonTitle
		if r := []rune(title); len(r) > titleWidth {
			title = string(r[:titleWidth-1]) + "…"
		}

		line := fmt.Sprintf("%s%s  %-*s  %d/%d  %3.0f%%",
			prefix, dateStr, titleWidth, title, a.Score, a.Total, percent(a.Score, a.Total))

		style := lipgloss.NewStyle().Foreground(scoreColor(a.Score, a.Total))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
			st, ok := s.stats[a.LessonID]
			var detail string
			if !ok {
				detail = "    Chưa có thống kê cho bài này"
			} else {
				detail = fmt.Sprintf("    %d lần làm  cao nhất %d/%d  chính xác %.0f%%",
					st.Attempts, st.BestScore, st.Total, st.Accuracy*100)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func percent(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

func scoreColor(score, total int) color.Color {
	p := percent(score, total)
	switch {
	case p >= 80:
		return theme.Success
	case p >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
