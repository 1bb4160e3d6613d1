package content

import "time"

// QuizQuestion is one multiple-choice question. CorrectAnswer is a 0-based
// index into Options.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Valid reports whether CorrectAnswer points at an existing option.
func (q QuizQuestion) Valid() bool {
	return q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// SimulationData describes a virtual experiment for a lesson. ImageURL is
// always a locally generated placeholder.
type SimulationData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Scenario    string `json:"scenario"`
	ImageURL    string `json:"imageUrl"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry of a tutoring conversation.
type ChatMessage struct {
	Role      Role
	Text      string
	Timestamp time.Time
}
