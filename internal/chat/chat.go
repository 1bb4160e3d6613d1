// Package chat keeps the tutoring transcript for the active lesson and
// serializes sends.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/website1975/vatly12CTST/internal/content"
)

// Pending is a send waiting for its reply.
type Pending struct {
	Conversation string
	LessonTitle  string
	History      []content.ChatMessage
	Text         string
}

// Controller owns one conversation at a time. It is not safe for
// concurrent use.
type Controller struct {
	conversation string
	lessonTitle  string
	messages     []content.ChatMessage
	sending      bool
	now          func() time.Time
}

// New creates an empty Controller. Call Reset before the first send.
func New() *Controller {
	return &Controller{now: time.Now}
}

// Reset starts a new conversation about lessonTitle, seeded with a
// greeting from the model. A reply still pending for the previous
// conversation will be dropped.
func (c *Controller) Reset(lessonTitle string) {
	c.conversation = uuid.NewString()
	c.lessonTitle = lessonTitle
	c.sending = false
	c.messages = []content.ChatMessage{{
		Role:      content.RoleModel,
		Text:      content.Greeting(lessonTitle),
		Timestamp: c.now(),
	}}
}

// Messages returns the transcript in conversation order.
func (c *Controller) Messages() []content.ChatMessage { return c.messages }

// Sending reports whether a reply is outstanding.
func (c *Controller) Sending() bool { return c.sending }

// Conversation returns the ID of the current conversation.
func (c *Controller) Conversation() string { return c.conversation }

// Begin appends text as a user message and enters the sending state. It
// returns false for blank input or while another send is outstanding.
// The returned history excludes the new message.
func (c *Controller) Begin(text string) (Pending, bool) {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" || c.sending {
		return Pending{}, false
	}

	history := append([]content.ChatMessage(nil), c.messages...)
	c.messages = append(c.messages, content.ChatMessage{
		Role:      content.RoleUser,
		Text:      text,
		Timestamp: c.now(),
	})
	c.sending = true

	return Pending{
		Conversation: c.conversation,
		LessonTitle:  c.lessonTitle,
		History:      history,
		Text:         text,
	}, true
}

// Complete appends reply for p and leaves the sending state. Replies for
// a conversation that has since been reset are discarded.
func (c *Controller) Complete(p Pending, reply string) bool {
	if p.Conversation != c.conversation || !c.sending {
		return false
	}
	c.messages = append(c.messages, content.ChatMessage{
		Role:      content.RoleModel,
		Text:      reply,
		Timestamp: c.now(),
	})
	c.sending = false
	return true
}
