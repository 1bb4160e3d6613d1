// Package help is the "how to study" overlay shown on first launch and
// on demand.
package help

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/ui/components"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

type feature struct {
	title string
	desc  string
}

var features = []feature{
	{"1. Lý thuyết", "Đọc tóm tắt kiến thức trọng tâm do AI biên soạn ngắn gọn, dễ hiểu."},
	{"2. Mô phỏng", "Xem kịch bản thí nghiệm ảo để hình dung hiện tượng vật lý."},
	{"3. Trắc nghiệm", "Tự kiểm tra kiến thức với bộ câu hỏi được sinh ngẫu nhiên mỗi lần."},
	{"4. Hỏi đáp AI", "Chưa hiểu bài? Chat trực tiếp với gia sư AI để được giải thích chi tiết."},
}

var shortcuts = []layout.KeyHint{
	{Key: "↑↓ Enter", Description: "Chọn bài học"},
	{Key: "1-4 Tab", Description: "Chuyển thẻ"},
	{Key: "a-d", Description: "Chọn đáp án"},
	{Key: "k", Description: "Nhập API Key"},
	{Key: "h", Description: "Lịch sử làm bài"},
}

// HelpScreen lists the study features and the main shortcuts.
type HelpScreen struct{}

var _ screen.Screen = (*HelpScreen)(nil)

// New creates the help overlay.
func New() *HelpScreen {
	return &HelpScreen{}
}

func (h *HelpScreen) Title() string { return "Hướng dẫn học tập" }

func (h *HelpScreen) Init() tea.Cmd { return nil }

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter", "esc", "q", "?":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Đã hiểu"},
		{Key: "Esc", Description: "Đóng"},
	}
}

func (h *HelpScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Các tính năng chính:"))
	b.WriteString("\n\n")
	for _, f := range features {
		b.WriteString(theme.Strong.Render(f.title))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("   " + f.desc))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Subtitle.Render("Phím tắt:"))
	b.WriteString("\n")
	for _, s := range shortcuts {
		b.WriteString("  ")
		b.WriteString(theme.Selected.Render(s.Key))
		b.WriteString("  ")
		b.WriteString(theme.Body.Render(s.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewButton("Enter", "Đã hiểu, bắt đầu học", true).View())

	return layout.RenderOverlay(h.Title(), b.String(), width, height)
}
