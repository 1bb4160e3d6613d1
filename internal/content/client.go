package content

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/curriculum"
	"github.com/website1975/vatly12CTST/internal/llm"
)

// Request purposes recorded in the LLM request log.
const (
	PurposeTheory     = "theory"
	PurposeQuiz       = "quiz"
	PurposeSimulation = "simulation"
	PurposeChat       = "chat"
)

// Factory builds a provider bound to apiKey.
type Factory func(ctx context.Context, apiKey string) (llm.Provider, error)

// Config controls the generation requests issued by a Client.
type Config struct {
	// NeedsKey gates every operation on a usable credential. It is false
	// for local providers such as Ollama.
	NeedsKey bool

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used for the hosted providers.
func DefaultConfig() Config {
	return Config{
		NeedsKey:    true,
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Client exposes the four content operations. No operation returns an
// error: failures are logged and replaced with a fallback value.
type Client struct {
	creds   *credential.Store
	factory Factory
	config  Config
	logger  *zap.Logger
	randInt func(n int) int

	mu       sync.Mutex
	provider llm.Provider

	flight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for trapped failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand replaces the source of placeholder image numbers.
func WithRand(fn func(n int) int) Option {
	return func(c *Client) { c.randInt = fn }
}

// New creates a Client. The provider is built lazily from the credential
// and rebuilt after every credential change.
func New(creds *credential.Store, factory Factory, cfg Config, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		factory: factory,
		config:  cfg,
		logger:  zap.NewNop(),
		randInt: rand.IntN,
	}
	for _, o := range opts {
		o(c)
	}
	creds.OnChange(c.Invalidate)
	return c
}

// Invalidate drops the cached provider.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.provider = nil
	c.mu.Unlock()
}

// Configured reports whether operations will reach the provider.
func (c *Client) Configured(ctx context.Context) bool {
	return !c.config.NeedsKey || c.creds.IsUsable(ctx)
}

func (c *Client) providerFor(ctx context.Context) (llm.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}
	p, err := c.factory(ctx, c.creds.Read(ctx))
	if err != nil {
		return nil, fmt.Errorf("build provider: %w", err)
	}
	c.provider = p
	return p, nil
}

func (c *Client) generate(ctx context.Context, purpose, lessonID string, req llm.Request) (*llm.Response, error) {
	p, err := c.providerFor(ctx)
	if err != nil {
		return nil, err
	}
	ctx = llm.WithLesson(llm.WithPurpose(ctx, purpose), lessonID)
	req.MaxTokens = c.config.MaxTokens
	req.Temperature = c.config.Temperature
	return p.Generate(ctx, req)
}

func (c *Client) warn(op, lessonID string, err error) {
	c.logger.Warn("content generation failed",
		zap.String("op", op),
		zap.String("lesson", lessonID),
		zap.String("kind", llm.Kind(err)),
		zap.Error(err))
}

func userPrompt(text string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: text}}
}

// GenerateTheory returns the lesson summary as Markdown.
func (c *Client) GenerateTheory(ctx context.Context, lesson curriculum.Lesson) string {
	if !c.Configured(ctx) {
		return TheoryNotConfigured
	}

	v, err, _ := c.flight.Do(PurposeTheory+":"+lesson.ID, func() (any, error) {
		resp, err := c.generate(ctx, PurposeTheory, lesson.ID, llm.Request{
			Messages: userPrompt(theoryPrompt(lesson)),
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	})
	if err != nil {
		c.warn(PurposeTheory, lesson.ID, err)
		return TheoryFailed
	}

	text := v.(string)
	if strings.TrimSpace(text) == "" {
		return TheoryEmpty
	}
	return text
}

// GenerateQuiz returns the question set for lesson, or nil when generation
// fails or any question is malformed.
func (c *Client) GenerateQuiz(ctx context.Context, lesson curriculum.Lesson) []QuizQuestion {
	if !c.Configured(ctx) {
		return nil
	}

	v, err, _ := c.flight.Do(PurposeQuiz+":"+lesson.ID, func() (any, error) {
		resp, err := c.generate(ctx, PurposeQuiz, lesson.ID, llm.Request{
			Messages: userPrompt(quizPrompt(lesson)),
			Schema:   QuizSchema,
		})
		if err != nil {
			return nil, err
		}
		var qs []QuizQuestion
		if err := json.Unmarshal(resp.Content, &qs); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		for i, q := range qs {
			if !q.Valid() {
				return nil, fmt.Errorf("question %d: correctAnswer %d out of range for %d options", i, q.CorrectAnswer, len(q.Options))
			}
		}
		return uniqueIDs(qs), nil
	})
	if err != nil {
		c.warn(PurposeQuiz, lesson.ID, err)
		return nil
	}

	qs := v.([]QuizQuestion)
	return append([]QuizQuestion(nil), qs...)
}

// uniqueIDs renumbers the questions 1..n when the generated IDs collide.
func uniqueIDs(qs []QuizQuestion) []QuizQuestion {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			for i := range qs {
				qs[i].ID = i + 1
			}
			return qs
		}
		seen[q.ID] = true
	}
	return qs
}

// GenerateSimulation returns a virtual experiment for lesson, or nil on
// failure. ImageURL is replaced with a random placeholder image.
func (c *Client) GenerateSimulation(ctx context.Context, lesson curriculum.Lesson) *SimulationData {
	if !c.Configured(ctx) {
		return nil
	}

	v, err, _ := c.flight.Do(PurposeSimulation+":"+lesson.ID, func() (any, error) {
		resp, err := c.generate(ctx, PurposeSimulation, lesson.ID, llm.Request{
			Messages: userPrompt(simulationPrompt(lesson)),
			Schema:   SimulationSchema,
		})
		if err != nil {
			return nil, err
		}
		var sim SimulationData
		if err := json.Unmarshal(resp.Content, &sim); err != nil {
			return nil, fmt.Errorf("decode simulation: %w", err)
		}
		return sim, nil
	})
	if err != nil {
		c.warn(PurposeSimulation, lesson.ID, err)
		return nil
	}

	sim := v.(SimulationData)
	sim.ImageURL = c.placeholderImage()
	return &sim
}

func (c *Client) placeholderImage() string {
	return PlaceholderImagePrefix + strconv.Itoa(c.randInt(1000))
}

// SendChatMessage answers newMessage given the prior transcript. history
// must not contain newMessage. The lesson ID for the request log is taken
// from ctx (see llm.WithLesson).
func (c *Client) SendChatMessage(ctx context.Context, history []ChatMessage, newMessage, lessonTitle string) string {
	if !c.Configured(ctx) {
		return ChatNotConfigured
	}

	lessonID := llm.LessonFrom(ctx)

	resp, err := c.generate(ctx, PurposeChat, lessonID, llm.Request{
		System:   chatSystemPrompt(lessonTitle),
		Messages: chatTurns(history, newMessage),
	})
	if err == nil && strings.TrimSpace(resp.Text()) == "" {
		err = fmt.Errorf("empty chat reply")
	}
	if err != nil {
		c.warn(PurposeChat, lessonID, err)
		return ChatFailed
	}
	return resp.Text()
}
