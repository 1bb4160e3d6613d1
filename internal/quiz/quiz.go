// Package quiz scores a loaded question set locally.
package quiz

import "github.com/website1975/vatly12CTST/internal/content"

// Controller holds the learner's selections for one question set.
type Controller struct {
	questions  []content.QuizQuestion
	selections map[int]int
	revealed   bool
}

// New creates a Controller over questions.
func New(questions []content.QuizQuestion) *Controller {
	c := &Controller{}
	c.Load(questions)
	return c
}

// Load replaces the question set and clears all state.
func (c *Controller) Load(questions []content.QuizQuestion) {
	c.questions = questions
	c.Reset()
}

// Reset clears selections and hides results.
func (c *Controller) Reset() {
	c.selections = make(map[int]int, len(c.questions))
	c.revealed = false
}

// Questions returns the loaded question set.
func (c *Controller) Questions() []content.QuizQuestion { return c.questions }

// Revealed reports whether results are shown.
func (c *Controller) Revealed() bool { return c.revealed }

// Select records option for question id. It returns false, changing
// nothing, once results are revealed or when id or option is unknown.
func (c *Controller) Select(id, option int) bool {
	if c.revealed {
		return false
	}
	q, ok := c.find(id)
	if !ok || option < 0 || option >= len(q.Options) {
		return false
	}
	c.selections[id] = option
	return true
}

// Selection returns the option chosen for question id.
func (c *Controller) Selection(id int) (int, bool) {
	v, ok := c.selections[id]
	return v, ok
}

// Answered returns the number of questions with a selection.
func (c *Controller) Answered() int { return len(c.selections) }

// Complete reports whether every loaded question has a selection.
func (c *Controller) Complete() bool {
	return len(c.questions) > 0 && len(c.selections) == len(c.questions)
}

// Submit reveals results. It is rejected until every question is answered.
func (c *Controller) Submit() bool {
	if c.revealed || !c.Complete() {
		return false
	}
	c.revealed = true
	return true
}

// Score counts questions whose selection matches the correct answer.
func (c *Controller) Score() int {
	n := 0
	for _, q := range c.questions {
		if sel, ok := c.selections[q.ID]; ok && sel == q.CorrectAnswer {
			n++
		}
	}
	return n
}

// Correct reports whether the selection for question id is right.
func (c *Controller) Correct(id int) bool {
	q, ok := c.find(id)
	if !ok {
		return false
	}
	sel, ok := c.selections[id]
	return ok && sel == q.CorrectAnswer
}

func (c *Controller) find(id int) (content.QuizQuestion, bool) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, true
		}
	}
	return content.QuizQuestion{}, false
}
