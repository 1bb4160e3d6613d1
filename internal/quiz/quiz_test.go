package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/website1975/vatly12CTST/internal/content"
)

func questions() []content.QuizQuestion {
	opts := []string{"A", "B", "C", "D"}
	return []content.QuizQuestion{
		{ID: 1, Question: "q1", Options: opts, CorrectAnswer: 0},
		{ID: 2, Question: "q2", Options: opts, CorrectAnswer: 3},
		{ID: 3, Question: "q3", Options: opts, CorrectAnswer: 1},
	}
}

func TestSubmitRequiresAllAnswers(t *testing.T) {
	c := New(questions())

	assert.True(t, c.Select(1, 0))
	assert.True(t, c.Select(2, 3))
	assert.False(t, c.Submit())
	assert.False(t, c.Revealed())

	assert.True(t, c.Select(3, 1))
	assert.True(t, c.Submit())
	assert.True(t, c.Revealed())
	assert.Equal(t, 3, c.Score())
}

func TestSelectOverwritesUntilRevealed(t *testing.T) {
	c := New(questions())
	c.Select(1, 2)
	c.Select(1, 0)
	sel, ok := c.Selection(1)
	assert.True(t, ok)
	assert.Equal(t, 0, sel)

	c.Select(2, 0)
	c.Select(3, 0)
	assert.True(t, c.Submit())

	assert.False(t, c.Select(1, 3))
	sel, _ = c.Selection(1)
	assert.Equal(t, 0, sel)
	assert.Equal(t, 1, c.Score())
	assert.True(t, c.Correct(1))
	assert.False(t, c.Correct(2))
}

func TestSelectRejectsUnknown(t *testing.T) {
	c := New(questions())
	assert.False(t, c.Select(99, 0))
	assert.False(t, c.Select(1, 4))
	assert.False(t, c.Select(1, -1))
	assert.Equal(t, 0, c.Answered())
}

func TestScoreBeforeSubmit(t *testing.T) {
	c := New(questions())
	c.Select(2, 3)
	assert.Equal(t, 1, c.Score())
}

func TestResetAndLoad(t *testing.T) {
	c := New(questions())
	for _, q := range c.Questions() {
		c.Select(q.ID, q.CorrectAnswer)
	}
	c.Submit()

	c.Reset()
	assert.False(t, c.Revealed())
	assert.Equal(t, 0, c.Answered())

	c.Select(1, 0)
	c.Load(questions()[:1])
	assert.Equal(t, 0, c.Answered())
	assert.Len(t, c.Questions(), 1)
}

func TestEmptySetCannotBeSubmitted(t *testing.T) {
	c := New(nil)
	assert.False(t, c.Complete())
	assert.False(t, c.Submit())
	assert.Equal(t, 0, c.Score())
}
