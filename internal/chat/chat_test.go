package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/website1975/vatly12CTST/internal/content"
)

const title = "Bài 9: Khái niệm từ trường"

func newTestController() *Controller {
	c := New()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	c.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	c.Reset(title)
	return c
}

func TestResetSeedsGreeting(t *testing.T) {
	c := newTestController()
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, content.RoleModel, msgs[0].Role)
	assert.Contains(t, msgs[0].Text, title)

	first := c.Conversation()
	c.Begin("Từ trường là gì?")
	c.Reset("Bài 10: Lực từ")
	require.Len(t, c.Messages(), 1)
	assert.Contains(t, c.Messages()[0].Text, "Bài 10: Lực từ")
	assert.NotEqual(t, first, c.Conversation())
	assert.False(t, c.Sending())
}

func TestBeginBlankIsNoop(t *testing.T) {
	c := newTestController()
	for _, in := range []string{"", "   ", "\n\t"} {
		_, ok := c.Begin(in)
		assert.False(t, ok)
	}
	assert.Len(t, c.Messages(), 1)
	assert.False(t, c.Sending())
}

func TestSendRoundTrip(t *testing.T) {
	c := newTestController()

	p, ok := c.Begin("  Đường sức từ là gì?  ")
	require.True(t, ok)
	assert.True(t, c.Sending())
	assert.Equal(t, "Đường sức từ là gì?", p.Text)
	assert.Equal(t, title, p.LessonTitle)
	require.Len(t, p.History, 1, "history excludes the new message")
	require.Len(t, c.Messages(), 2)
	assert.Equal(t, content.RoleUser, c.Messages()[1].Role)

	_, ok = c.Begin("Câu hỏi thứ hai")
	assert.False(t, ok, "sends are serialized")
	assert.Len(t, c.Messages(), 2)

	require.True(t, c.Complete(p, "Là đường cong mô tả từ trường."))
	assert.False(t, c.Sending())
	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, content.RoleModel, msgs[2].Role)
	assert.True(t, msgs[1].Timestamp.Before(msgs[2].Timestamp))

	p2, ok := c.Begin("Câu hỏi thứ hai")
	require.True(t, ok)
	assert.Len(t, p2.History, 3)
}

func TestCompleteAfterResetIsDropped(t *testing.T) {
	c := newTestController()
	p, ok := c.Begin("Xin chào")
	require.True(t, ok)

	c.Reset("Bài 11: Cảm ứng điện từ")
	assert.False(t, c.Complete(p, "trả lời cũ"))
	assert.Len(t, c.Messages(), 1)
}

func TestBeginNormalizesUnicode(t *testing.T) {
	c := newTestController()
	// "ệ" written as e + combining circumflex + combining dot below.
	p, ok := c.Begin("nhie\u0302\u0323t")
	require.True(t, ok)
	assert.Equal(t, "nhi\u1ec7t", p.Text)
}
