package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/lessonctl"
	"github.com/website1975/vatly12CTST/internal/ui/components"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// Placeholder and status lines.
const (
	msgTheoryLoading = "Đang soạn bài giảng..."
	msgSimLoading    = "Đang thiết kế kịch bản thí nghiệm..."
	msgSimEmpty      = "Không có dữ liệu mô phỏng."
	msgQuizLoading   = "Đang khởi tạo bộ câu hỏi trắc nghiệm..."
	msgQuizEmpty     = "Chưa có dữ liệu câu hỏi."
	msgReplying      = "Đang trả lời..."
	msgNeedKey       = "Nhấn k để nhập API Key."

	simPurpose  = "Giúp hình dung trực quan các hiện tượng vật lý khó quan sát bằng mắt thường hoặc diễn ra ở cấp độ vi mô."
	simActivity = "Đọc kịch bản bên cạnh và thử tưởng tượng hoặc vẽ lại sơ đồ thí nghiệm vào vở."
)

func (s *StudyScreen) sidebarWidth(width int) int {
	if layout.IsCompactWidth(width) {
		return 26
	}
	return 34
}

func (s *StudyScreen) View(width, height int) string {
	sw := s.sidebarWidth(width)
	menu := s.menu.View(sw-2, height)
	if s.focus != focusSidebar {
		menu = lipgloss.NewStyle().Faint(true).Render(menu)
	}
	sidebar := theme.Sidebar.Width(sw).Height(height).Render(menu)

	paneWidth := max(width-lipgloss.Width(sidebar)-2, 20)
	pane := lipgloss.NewStyle().PaddingLeft(2).Render(s.renderPane(paneWidth, height))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)
}

func (s *StudyScreen) renderPane(width, height int) string {
	l := s.lessons.Lesson()
	head := theme.Subtitle.Render(strings.ToUpper(l.Chapter)) + "\n" +
		theme.Title.Render(components.Truncate(l.Title, width)) + "\n" +
		s.renderTabs() + "\n"

	bodyHeight := max(height-lipgloss.Height(head)-1, 3)
	return head + "\n" + s.renderBody(width, bodyHeight)
}

func (s *StudyScreen) renderTabs() string {
	var tabs []string
	for i, t := range lessonctl.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == s.lessons.Tab() {
			tabs = append(tabs, theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (s *StudyScreen) renderBody(width, height int) string {
	switch s.lessons.Tab() {
	case lessonctl.TabSimulation:
		return s.renderSimulation(width, height)
	case lessonctl.TabQuiz:
		return s.renderQuiz(width, height)
	case lessonctl.TabChat:
		return s.renderChat(width, height)
	default:
		return s.renderTheory(width, height)
	}
}

// scroll shows body in the viewport and applies pending scroll requests.
func (s *StudyScreen) scroll(body string, width, height int) string {
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
	s.vp.SetContent(body)
	switch {
	case s.toBottom:
		s.vp.GotoBottom()
	case s.toTop:
		s.vp.GotoTop()
	}
	s.toTop, s.toBottom = false, false
	return s.vp.View()
}

func (s *StudyScreen) renderTheory(width, height int) string {
	switch s.lessons.Status(lessonctl.KindTheory) {
	case lessonctl.StatusLoading:
		return components.Centered(msgTheoryLoading, width, height)
	case lessonctl.StatusEmpty:
		return ""
	}
	return s.scroll(components.Markdown(s.lessons.Theory(), width-2), width, height)
}

func (s *StudyScreen) renderSimulation(width, height int) string {
	status := s.lessons.Status(lessonctl.KindSimulation)
	if status == lessonctl.StatusLoading {
		return components.Centered(msgSimLoading, width, height)
	}
	sim := s.lessons.Simulation()
	if sim == nil {
		msg := msgSimEmpty
		if status == lessonctl.StatusEmpty {
			msg += "\n\n" + msgNeedKey
		} else {
			msg += "\n\n[r] Tải lại"
		}
		return components.Centered(msg, width, height)
	}

	inner := width - 2
	var b strings.Builder
	b.WriteString(components.Panel(sim.Title, sim.Description, inner))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(wordwrap.String("Hình minh hoạ: "+sim.ImageURL, inner)))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading2.Render("Kịch bản thí nghiệm"))
	b.WriteString("\n\n")
	b.WriteString(components.Markdown(sim.Scenario, inner))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading3.Render("Mục đích"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(wordwrap.String(simPurpose, inner)))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading3.Render("Hoạt động đề xuất"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(wordwrap.String(simActivity, inner)))

	return s.scroll(b.String(), width, height)
}

func (s *StudyScreen) renderQuiz(width, height int) string {
	status := s.lessons.Status(lessonctl.KindQuiz)
	if status == lessonctl.StatusLoading {
		return components.Centered(msgQuizLoading, width, height)
	}
	qs := s.quiz.Questions()
	if len(qs) == 0 {
		msg := msgQuizEmpty
		if status == lessonctl.StatusEmpty {
			msg += "\n\n" + msgNeedKey
		} else {
			msg += "\n\n[r] Tải lại"
		}
		return components.Centered(msg, width, height)
	}

	var top []string
	top = append(top, theme.Heading1.Render("Củng cố kiến thức"))
	if s.quiz.Revealed() {
		top = append(top,
			theme.Strong.Render(fmt.Sprintf("Điểm: %d/%d", s.quiz.Score(), len(qs))),
			components.NewButton("n", "Làm đề mới", true).View())
	} else {
		top = append(top,
			theme.Subtitle.Render(fmt.Sprintf("Đã trả lời %d/%d", s.quiz.Answered(), len(qs))),
			components.NewButton("s", "Nộp bài", s.quiz.Complete()).View())
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(top[:2], "   "), "   ", top[2])

	done := s.quiz.Answered()
	if s.quiz.Revealed() {
		done = s.quiz.Score()
	}
	bar := components.NewProgressBar("", float64(done)/float64(len(qs)), true, min(width, 48))
	header += "\n" + bar.View()

	var b strings.Builder
	cursorLine := 0
	for i, q := range qs {
		if i == s.quizCursor {
			cursorLine = strings.Count(b.String(), "\n")
		}
		chosen, ok := s.quiz.Selection(q.ID)
		if !ok {
			chosen = -1
		}
		b.WriteString(components.MultiChoice{
			Number:      i + 1,
			Question:    q.Question,
			Options:     q.Options,
			Correct:     q.CorrectAnswer,
			Chosen:      chosen,
			Focused:     i == s.quizCursor,
			Revealed:    s.quiz.Revealed(),
			Explanation: q.Explanation,
		}.View(width - 2))
		b.WriteString("\n")
	}

	listHeight := max(height-lipgloss.Height(header)-1, 3)
	list := s.scroll(b.String(), width, listHeight)
	if s.follow {
		s.vp.EnsureVisible(cursorLine, 0, 0)
		s.follow = false
		list = s.vp.View()
	}
	return header + "\n\n" + list
}

func (s *StudyScreen) renderChat(width, height int) string {
	bubbleWidth := max(width*3/4, 20)

	var b strings.Builder
	for _, m := range s.chat.Messages() {
		b.WriteString(renderBubble(m, bubbleWidth, width))
		b.WriteString("\n\n")
	}
	if s.chat.Sending() {
		b.WriteString(theme.Hint.Render(msgReplying))
		b.WriteString("\n")
	}

	s.input.SetWidth(width - 4)
	input := s.input.View()
	if !s.input.Focused() {
		input = theme.Hint.Render("Nhấn Enter để đặt câu hỏi về bài học...")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Render(input)

	transcriptHeight := max(height-lipgloss.Height(box), 3)
	return s.scroll(strings.TrimRight(b.String(), "\n"), width, transcriptHeight) + "\n" + box
}

func renderBubble(m content.ChatMessage, bubbleWidth, width int) string {
	if m.Role == content.RoleUser {
		text := wordwrap.String(m.Text, bubbleWidth-4)
		bubble := lipgloss.NewStyle().
			Background(theme.UserBg).
			Foreground(theme.Text).
			Padding(0, 1).
			Render(text)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, bubble)
	}
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Gia sư AI")
	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(theme.ModelBg).
		PaddingLeft(1).
		Render(components.Markdown(m.Text, bubbleWidth-4))
	return label + "\n" + body
}
