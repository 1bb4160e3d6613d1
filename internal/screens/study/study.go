// Package study is the main screen: a lesson sidebar next to the theory,
// simulation, quiz and chat tabs of the selected lesson.
package study

import (
	"context"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/chat"
	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/curriculum"
	"github.com/website1975/vatly12CTST/internal/lessonctl"
	"github.com/website1975/vatly12CTST/internal/llm"
	"github.com/website1975/vatly12CTST/internal/quiz"
	"github.com/website1975/vatly12CTST/internal/router"
	"github.com/website1975/vatly12CTST/internal/screen"
	"github.com/website1975/vatly12CTST/internal/screens/apikey"
	"github.com/website1975/vatly12CTST/internal/screens/help"
	"github.com/website1975/vatly12CTST/internal/screens/history"
	"github.com/website1975/vatly12CTST/internal/store"
	"github.com/website1975/vatly12CTST/internal/ui/components"
	"github.com/website1975/vatly12CTST/internal/ui/layout"
)

// KeyLastLesson is the setting holding the ID of the last opened lesson.
const KeyLastLesson = "lastLesson"

// Content generates lesson material and tutor replies. *content.Client
// implements it.
type Content interface {
	lessonctl.Generator
	SendChatMessage(ctx context.Context, history []content.ChatMessage, newMessage, lessonTitle string) string
	Configured(ctx context.Context) bool
}

// Deps are the collaborators of the study screen. Events and Settings
// may be nil.
type Deps struct {
	Content  Content
	Creds    *credential.Store
	Events   store.EventRepo
	Settings store.SettingsRepo
	Provider string
	Logger   *zap.Logger
}

type focus int

const (
	focusContent focus = iota
	focusSidebar
)

// StudyScreen wires the lesson, quiz and chat controllers to the terminal.
type StudyScreen struct {
	deps Deps

	lessons *lessonctl.Controller
	quiz    *quiz.Controller
	chat    *chat.Controller

	menu  components.Menu
	input components.TextInput
	vp    viewport.Model
	focus focus

	quizCursor int

	// scroll requests applied on the next render
	toTop, toBottom, follow bool
}

var (
	_ screen.Screen          = (*StudyScreen)(nil)
	_ screen.KeyHintProvider = (*StudyScreen)(nil)
	_ screen.InputCapturer   = (*StudyScreen)(nil)
	_ router.Resumer         = (*StudyScreen)(nil)
)

// New creates the study screen. No lesson is loaded until Init.
func New(deps Deps) *StudyScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &StudyScreen{
		deps:  deps,
		quiz:  quiz.New(nil),
		chat:  chat.New(),
		menu:  components.NewMenu(menuItems()),
		input: components.NewTextInput("Đặt câu hỏi về bài học...", false, 1000),
		vp:    viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
	}
	s.input.Blur()
	s.lessons = lessonctl.New(func() bool {
		return deps.Content.Configured(context.Background())
	})
	return s
}

func menuItems() []components.MenuItem {
	var items []components.MenuItem
	for _, ch := range curriculum.All() {
		items = append(items, components.MenuItem{ID: ch.ID, Label: ch.Title, Header: true})
		for _, l := range ch.Lessons {
			items = append(items, components.MenuItem{ID: l.ID, Label: l.Title})
		}
	}
	return items
}

func (s *StudyScreen) Title() string {
	return s.lessons.Lesson().Title
}

// Init opens the last studied lesson and shows the help and key overlays
// when they are due.
func (s *StudyScreen) Init() tea.Cmd {
	ctx := context.Background()

	lesson := curriculum.First()
	if s.deps.Settings != nil {
		if id, ok, err := s.deps.Settings.Get(ctx, KeyLastLesson); err != nil {
			s.deps.Logger.Warn("read last lesson", zap.Error(err))
		} else if l, found := curriculum.Find(id); ok && found {
			lesson = l
		}
	}

	cmds := []tea.Cmd{s.selectLesson(lesson)}

	var overlays []tea.Cmd
	if !s.deps.Creds.HelpSeen(ctx) {
		if err := s.deps.Creds.MarkHelpSeen(ctx); err != nil {
			s.deps.Logger.Warn("mark help seen", zap.Error(err))
		}
		overlays = append(overlays, push(help.New()))
	}
	if !s.deps.Content.Configured(ctx) {
		overlays = append(overlays, push(s.keyOverlay()))
	}
	cmds = append(cmds, tea.Sequence(overlays...))

	return tea.Batch(cmds...)
}

// Resume restores keyboard focus after an overlay closes.
func (s *StudyScreen) Resume() tea.Cmd {
	if s.lessons.Tab() == lessonctl.TabChat && s.focus == focusContent {
		return s.input.Focus()
	}
	return nil
}

// CapturesInput reports whether keys are being typed into the chat box.
func (s *StudyScreen) CapturesInput() bool {
	return s.input.Focused()
}

func push(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: sc} }
}

func (s *StudyScreen) keyOverlay() screen.Screen {
	return apikey.New(s.deps.Creds, apikey.ProviderFor(s.deps.Provider))
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.applyResult(msg.result)
		return s, nil

	case chatReplyMsg:
		if s.chat.Complete(msg.pending, msg.reply) {
			s.toBottom = true
		}
		return s, nil

	case persistedMsg:
		if msg.err != nil {
			s.deps.Logger.Warn("persist "+msg.what, zap.Error(msg.err))
		}
		return s, nil

	case apikey.ChangedMsg:
		return s, s.credentialsChanged()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)

	case tea.PasteMsg:
		if s.input.Focused() {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StudyScreen) applyResult(r lessonctl.Result) {
	if !s.lessons.Apply(r) {
		return
	}
	if r.Kind == lessonctl.KindQuiz {
		s.quiz.Load(s.lessons.Quiz())
		s.quizCursor = 0
	}
	if tab := s.lessons.Tab(); tab != lessonctl.TabChat {
		if k, _ := tab.Kind(); k == r.Kind {
			s.toTop = true
		}
	}
}

// credentialsChanged reloads content that was produced without a usable
// key and starts the load of the visible tab if it never ran.
func (s *StudyScreen) credentialsChanged() tea.Cmd {
	var loads []lessonctl.Load
	if s.lessons.Status(lessonctl.KindTheory) == lessonctl.StatusLoaded &&
		s.lessons.Theory() == content.TheoryNotConfigured {
		loads = append(loads, s.lessons.Refresh(lessonctl.KindTheory)...)
	}
	if tab := s.lessons.Tab(); tab != lessonctl.TabTheory {
		loads = append(loads, s.lessons.SwitchTab(tab)...)
	}
	return s.run(loads)
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.input.Focused() {
		return s.handleChatKey(msg, key)
	}

	switch key {
	case "q":
		return tea.Quit
	case "tab":
		return s.switchTab(s.nextTab(1))
	case "shift+tab":
		return s.switchTab(s.nextTab(-1))
	case "1", "2", "3", "4":
		return s.switchTab(lessonctl.Tabs[int(key[0]-'1')])
	case "left":
		s.focus = focusSidebar
		s.menu.Focus(s.lessons.Lesson().ID)
		return nil
	case "right":
		return s.focusContent()
	case "[":
		return s.selectLesson(curriculum.Prev(s.lessons.Lesson().ID))
	case "]":
		return s.selectLesson(curriculum.Next(s.lessons.Lesson().ID))
	case "?":
		return push(help.New())
	case "k":
		return push(s.keyOverlay())
	case "h":
		if s.deps.Events == nil {
			return nil
		}
		return push(history.New(s.deps.Events))
	}

	if s.focus == focusSidebar {
		return s.handleSidebarKey(key)
	}

	switch s.lessons.Tab() {
	case lessonctl.TabQuiz:
		return s.handleQuizKey(key)
	case lessonctl.TabChat:
		if key == "enter" {
			return s.focusContent()
		}
	}
	return s.handleScrollKey(key)
}

func (s *StudyScreen) handleSidebarKey(key string) tea.Cmd {
	switch key {
	case "up":
		s.menu.Up()
	case "down":
		s.menu.Down()
	case "enter", "space":
		item, ok := s.menu.Current()
		if !ok {
			return nil
		}
		l, found := curriculum.Find(item.ID)
		if !found {
			return nil
		}
		cmd := s.selectLesson(l)
		return tea.Batch(cmd, s.focusContent())
	}
	return nil
}

func (s *StudyScreen) handleScrollKey(key string) tea.Cmd {
	switch key {
	case "up":
		s.vp.ScrollUp(1)
	case "down":
		s.vp.ScrollDown(1)
	case "pgup":
		s.vp.PageUp()
	case "pgdown", "space":
		s.vp.PageDown()
	case "home", "g":
		s.vp.GotoTop()
	case "r":
		if k, ok := s.lessons.Tab().Kind(); ok {
			return s.run(s.lessons.Refresh(k))
		}
	}
	return nil
}

func (s *StudyScreen) handleQuizKey(key string) tea.Cmd {
	qs := s.quiz.Questions()
	switch key {
	case "up":
		if s.quizCursor > 0 {
			s.quizCursor--
			s.follow = true
		}
		return nil
	case "down":
		if s.quizCursor < len(qs)-1 {
			s.quizCursor++
			s.follow = true
		}
		return nil
	case "pgup":
		s.vp.PageUp()
		return nil
	case "pgdown":
		s.vp.PageDown()
		return nil
	case "a", "b", "c", "d":
		if s.quizCursor >= len(qs) {
			return nil
		}
		q := qs[s.quizCursor]
		if s.quiz.Select(q.ID, int(key[0]-'a')) && s.quizCursor < len(qs)-1 {
			s.quizCursor++
			s.follow = true
		}
		return nil
	case "s", "enter":
		if !s.quiz.Submit() {
			return nil
		}
		s.toTop = true
		return s.recordAttempt()
	case "n":
		if !s.quiz.Revealed() {
			return nil
		}
		return s.reloadQuiz()
	case "r":
		return s.reloadQuiz()
	}
	return nil
}

// reloadQuiz clears the answers and fetches a new question set.
func (s *StudyScreen) reloadQuiz() tea.Cmd {
	loads := s.lessons.Refresh(lessonctl.KindQuiz)
	if len(loads) == 0 {
		return nil
	}
	s.quiz.Load(nil)
	s.quizCursor = 0
	return s.run(loads)
}

func (s *StudyScreen) handleChatKey(msg tea.KeyPressMsg, key string) tea.Cmd {
	switch key {
	case "enter":
		return s.sendChat()
	case "esc":
		s.input.Blur()
		return nil
	case "tab":
		s.input.Blur()
		return s.switchTab(s.nextTab(1))
	case "shift+tab":
		s.input.Blur()
		return s.switchTab(s.nextTab(-1))
	case "up":
		s.vp.ScrollUp(1)
		return nil
	case "down":
		s.vp.ScrollDown(1)
		return nil
	case "pgup":
		s.vp.PageUp()
		return nil
	case "pgdown":
		s.vp.PageDown()
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *StudyScreen) sendChat() tea.Cmd {
	if s.chat.Sending() {
		return nil
	}
	p, ok := s.chat.Begin(s.input.Value())
	if !ok {
		return nil
	}
	s.input.Reset()
	s.toBottom = true

	c := s.deps.Content
	ctx := llm.WithLesson(context.Background(), s.lessons.Lesson().ID)
	return func() tea.Msg {
		return chatReplyMsg{
			pending: p,
			reply:   c.SendChatMessage(ctx, p.History, p.Text, p.LessonTitle),
		}
	}
}

func (s *StudyScreen) nextTab(step int) lessonctl.Tab {
	n := len(lessonctl.Tabs)
	return lessonctl.Tabs[(int(s.lessons.Tab())+step+n)%n]
}

func (s *StudyScreen) switchTab(t lessonctl.Tab) tea.Cmd {
	if t != s.lessons.Tab() {
		s.toTop = true
	}
	cmd := s.run(s.lessons.SwitchTab(t))
	if t == lessonctl.TabChat {
		s.toBottom = true
		if s.focus == focusContent {
			return tea.Batch(cmd, s.input.Focus())
		}
	} else {
		s.input.Blur()
	}
	return cmd
}

func (s *StudyScreen) focusContent() tea.Cmd {
	s.focus = focusContent
	if s.lessons.Tab() == lessonctl.TabChat {
		return s.input.Focus()
	}
	return nil
}

// selectLesson makes l active, resets the quiz and chat and starts its
// theory load. Selecting the active lesson does nothing.
func (s *StudyScreen) selectLesson(l curriculum.Lesson) tea.Cmd {
	loads := s.lessons.SelectLesson(l)
	if len(loads) == 0 {
		return nil
	}
	s.quiz.Load(nil)
	s.quizCursor = 0
	s.chat.Reset(l.Title)
	s.input.Reset()
	s.input.Blur()
	s.menu.Active = l.ID
	s.menu.Focus(l.ID)
	s.toTop = true

	return tea.Batch(s.run(loads), s.rememberLesson(l.ID))
}

func (s *StudyScreen) run(loads []lessonctl.Load) tea.Cmd {
	if len(loads) == 0 {
		return nil
	}
	g := s.deps.Content
	cmds := make([]tea.Cmd, 0, len(loads))
	for _, l := range loads {
		cmds = append(cmds, func() tea.Msg {
			return loadedMsg{result: lessonctl.Run(context.Background(), g, l)}
		})
	}
	return tea.Batch(cmds...)
}

func (s *StudyScreen) rememberLesson(id string) tea.Cmd {
	repo := s.deps.Settings
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		return persistedMsg{what: "last lesson", err: repo.Set(context.Background(), KeyLastLesson, id)}
	}
}

func (s *StudyScreen) recordAttempt() tea.Cmd {
	repo := s.deps.Events
	if repo == nil {
		return nil
	}
	l := s.lessons.Lesson()
	data := store.QuizAttemptData{
		AttemptID:   uuid.NewString(),
		LessonID:    l.ID,
		LessonTitle: l.Title,
		Score:       s.quiz.Score(),
		Total:       len(s.quiz.Questions()),
	}
	return func() tea.Msg {
		return persistedMsg{what: "quiz attempt", err: repo.AppendQuizAttempt(context.Background(), data)}
	}
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Gửi"},
			{Key: "Esc", Description: "Thoát ô nhập"},
			{Key: "Tab", Description: "Chuyển thẻ"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	if s.focus == focusSidebar {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Chọn bài"},
			{Key: "Enter", Description: "Mở bài"},
			{Key: "→", Description: "Nội dung"},
			{Key: "?", Description: "Hướng dẫn"},
			{Key: "q", Description: "Thoát"},
		}
	}

	hints := []layout.KeyHint{{Key: "1-4", Description: "Thẻ"}, {Key: "←", Description: "Bài học"}}
	switch s.lessons.Tab() {
	case lessonctl.TabQuiz:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Câu hỏi"},
			layout.KeyHint{Key: "a-d", Description: "Chọn"},
			layout.KeyHint{Key: "s", Description: "Nộp bài"},
			layout.KeyHint{Key: "n", Description: "Đề mới"},
		)
	case lessonctl.TabChat:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Nhập câu hỏi"})
	default:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Cuộn"},
			layout.KeyHint{Key: "r", Description: "Tải lại"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "k", Description: "API Key"},
		layout.KeyHint{Key: "h", Description: "Lịch sử"},
		layout.KeyHint{Key: "?", Description: "Hướng dẫn"},
	)
}
