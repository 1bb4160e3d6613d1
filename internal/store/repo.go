package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SettingsRepo is a plain string key/value store.
type SettingsRepo interface {
	// Get returns the value for key. A missing key reports ok=false and no error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set inserts or overwrites key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	LessonID     string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates LLM usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsageStat aggregates token usage for one model.
type ModelUsageStat struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QuizAttemptData captures a submitted quiz.
type QuizAttemptData struct {
	AttemptID   string
	LessonID    string
	LessonTitle string
	Score       int
	Total       int
}

// QuizAttemptRecord is a stored quiz attempt.
type QuizAttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizAttemptData
}

// LessonQuizStat aggregates quiz attempts for one lesson.
type LessonQuizStat struct {
	LessonID    string
	LessonTitle string
	Attempts    int
	BestScore   int
	Total       int     // question count of the best attempt
	Accuracy    float64 // correct / answered across all attempts
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose, ordered by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates usage per model, ordered by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsageStat, error)

	// AppendQuizAttempt records a submitted quiz.
	AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error

	// QueryQuizAttempts returns quiz attempts, newest first.
	QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error)

	// QuizStatsByLesson aggregates attempts per lesson, ordered by lesson ID.
	QuizStatsByLesson(ctx context.Context) ([]LessonQuizStat, error)
}
