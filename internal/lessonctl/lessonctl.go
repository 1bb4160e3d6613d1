// Package lessonctl holds the per-lesson content state behind the study
// screen. It is a reducer: methods mutate state and return the loads the
// caller must start; results come back through Apply.
package lessonctl

import (
	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/curriculum"
)

// Kind is a lazily loaded content kind.
type Kind int

const (
	KindTheory Kind = iota
	KindSimulation
	KindQuiz

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindTheory:
		return "theory"
	case KindSimulation:
		return "simulation"
	case KindQuiz:
		return "quiz"
	default:
		return "unknown"
	}
}

// Tab is a content tab of the study screen.
type Tab int

const (
	TabTheory Tab = iota
	TabSimulation
	TabQuiz
	TabChat
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabTheory, TabSimulation, TabQuiz, TabChat}

// Label is the tab caption.
func (t Tab) Label() string {
	switch t {
	case TabTheory:
		return "Lý thuyết"
	case TabSimulation:
		return "Mô phỏng"
	case TabQuiz:
		return "Trắc nghiệm"
	case TabChat:
		return "Hỏi đáp AI"
	default:
		return ""
	}
}

// Kind returns the content kind shown on t. Chat has none.
func (t Tab) Kind() (Kind, bool) {
	switch t {
	case TabTheory:
		return KindTheory, true
	case TabSimulation:
		return KindSimulation, true
	case TabQuiz:
		return KindQuiz, true
	default:
		return 0, false
	}
}

// Status is the load state of one content kind.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusLoaded
)

// Load identifies one requested generation. Epoch is unique per request.
type Load struct {
	Kind   Kind
	Lesson curriculum.Lesson
	Epoch  uint64
}

// Result carries the value produced for a Load. Only the field matching
// Load.Kind is read.
type Result struct {
	Load
	Theory     string
	Quiz       []content.QuizQuestion
	Simulation *content.SimulationData
}

type slot struct {
	status Status
	epoch  uint64
}

// Controller tracks the active lesson, the visible tab and one slot per
// content kind. It is not safe for concurrent use.
type Controller struct {
	lesson curriculum.Lesson
	tab    Tab
	seq    uint64
	slots  [numKinds]slot

	theory     string
	quiz       []content.QuizQuestion
	simulation *content.SimulationData

	usable func() bool
}

// New creates a Controller with no active lesson. usable reports whether
// credentials allow quiz and simulation loads on tab switch.
func New(usable func() bool) *Controller {
	if usable == nil {
		usable = func() bool { return true }
	}
	return &Controller{usable: usable}
}

// Lesson returns the active lesson.
func (c *Controller) Lesson() curriculum.Lesson { return c.lesson }

// Tab returns the visible tab.
func (c *Controller) Tab() Tab { return c.tab }

// Status returns the load state of k.
func (c *Controller) Status(k Kind) Status { return c.slots[k].status }

// Theory returns the loaded theory text.
func (c *Controller) Theory() string { return c.theory }

// Quiz returns the loaded questions.
func (c *Controller) Quiz() []content.QuizQuestion { return c.quiz }

// Simulation returns the loaded simulation, nil when none.
func (c *Controller) Simulation() *content.SimulationData { return c.simulation }

// SelectLesson makes l active, drops all content, shows the theory tab and
// starts the theory load. Selecting the active lesson again is a no-op.
func (c *Controller) SelectLesson(l curriculum.Lesson) []Load {
	if l.ID == c.lesson.ID && c.lesson.ID != "" {
		return nil
	}
	c.lesson = l
	c.tab = TabTheory
	c.slots = [numKinds]slot{}
	c.theory = ""
	c.quiz = nil
	c.simulation = nil
	return []Load{c.start(KindTheory)}
}

// SwitchTab shows t and starts its load when it has never been loaded for
// this lesson and credentials are usable.
func (c *Controller) SwitchTab(t Tab) []Load {
	c.tab = t
	k, ok := t.Kind()
	if !ok || c.lesson.ID == "" {
		return nil
	}
	if c.slots[k].status != StatusEmpty {
		return nil
	}
	if k != KindTheory && !c.usable() {
		return nil
	}
	return []Load{c.start(k)}
}

// Refresh forces a reload of k. It does nothing while k is loading.
func (c *Controller) Refresh(k Kind) []Load {
	if c.lesson.ID == "" || c.slots[k].status == StatusLoading {
		return nil
	}
	return []Load{c.start(k)}
}

func (c *Controller) start(k Kind) Load {
	c.seq++
	c.slots[k] = slot{status: StatusLoading, epoch: c.seq}
	return Load{Kind: k, Lesson: c.lesson, Epoch: c.seq}
}

// Apply stores r if it answers the load currently in flight for its kind.
// Results for another lesson or a superseded request are discarded and
// Apply reports false.
func (c *Controller) Apply(r Result) bool {
	if r.Kind < 0 || r.Kind >= numKinds {
		return false
	}
	s := c.slots[r.Kind]
	if r.Lesson.ID != c.lesson.ID || s.status != StatusLoading || s.epoch != r.Epoch {
		return false
	}

	switch r.Kind {
	case KindTheory:
		c.theory = r.Theory
	case KindQuiz:
		c.quiz = r.Quiz
	case KindSimulation:
		c.simulation = r.Simulation
	}
	c.slots[r.Kind].status = StatusLoaded
	return true
}
