package study

import (
	"github.com/website1975/vatly12CTST/internal/chat"
	"github.com/website1975/vatly12CTST/internal/lessonctl"
)

// loadedMsg carries a finished content generation.
type loadedMsg struct {
	result lessonctl.Result
}

// chatReplyMsg carries the tutor's reply to a pending send.
type chatReplyMsg struct {
	pending chat.Pending
	reply   string
}

// persistedMsg reports the outcome of a background store write.
type persistedMsg struct {
	what string
	err  error
}
