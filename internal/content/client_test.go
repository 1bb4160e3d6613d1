package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/curriculum"
	"github.com/website1975/vatly12CTST/internal/llm"
)

const testKey = "AIzaSyTestKey0123456789"

type memRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fixture struct {
	client *Client
	creds  *credential.Store
	mock   *llm.MockProvider
	builds int
	keys   []string
}

func newFixture(t *testing.T, key string, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{mock: llm.NewMockProvider()}
	f.creds = credential.New(&memRepo{data: map[string]string{}})
	if key != "" {
		require.NoError(t, f.creds.Save(context.Background(), key))
	}
	factory := func(_ context.Context, apiKey string) (llm.Provider, error) {
		f.builds++
		f.keys = append(f.keys, apiKey)
		return f.mock, nil
	}
	f.client = New(f.creds, factory, DefaultConfig(), opts...)
	return f
}

func lesson(t *testing.T, id string) curriculum.Lesson {
	t.Helper()
	l, ok := curriculum.Find(id)
	require.True(t, ok, "lesson %s", id)
	return l
}

const quizJSON = `[
	{"id": 1, "question": "Nhiệt độ sôi của nước ở áp suất tiêu chuẩn?", "options": ["0 °C", "50 °C", "100 °C", "273 °C"], "correctAnswer": 2, "explanation": "Nước sôi ở 100 °C."},
	{"id": 2, "question": "Đơn vị của nhiệt dung riêng?", "options": ["J/kg.K", "J", "K", "W"], "correctAnswer": 0, "explanation": "J/kg.K."}
]`

func TestNoCredential_NoRemoteCalls(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	l := lesson(t, "l1")

	assert.Equal(t, TheoryNotConfigured, f.client.GenerateTheory(ctx, l))
	assert.Empty(t, f.client.GenerateQuiz(ctx, l))
	assert.Nil(t, f.client.GenerateSimulation(ctx, l))
	assert.Equal(t, ChatNotConfigured, f.client.SendChatMessage(ctx, nil, "Xin chào", l.Title))

	assert.Equal(t, 0, f.mock.CallCount())
	assert.Equal(t, 0, f.builds, "provider must not be built without a usable key")
}

func TestPlaceholderKeyIsNotUsable(t *testing.T) {
	f := newFixture(t, "your_api_key_here")
	assert.False(t, f.client.Configured(context.Background()))
}

func TestKeylessProviderSkipsGate(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddText("## Nội năng")
	creds := credential.New(&memRepo{data: map[string]string{}})
	cfg := DefaultConfig()
	cfg.NeedsKey = false
	c := New(creds, func(context.Context, string) (llm.Provider, error) { return mock, nil }, cfg)

	assert.Equal(t, "## Nội năng", c.GenerateTheory(context.Background(), lesson(t, "l2")))
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateTheory(t *testing.T) {
	ctx := context.Background()
	l := lesson(t, "l1")

	t.Run("verbatim", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText("## Cấu trúc của chất\n\n- Rắn\n- Lỏng")

		got := f.client.GenerateTheory(ctx, l)
		assert.Equal(t, "## Cấu trúc của chất\n\n- Rắn\n- Lỏng", got)

		req, ok := f.mock.LastCall()
		require.True(t, ok)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "**"+l.Title+"**")
		assert.Contains(t, req.Messages[0].Content, "**"+l.Chapter+"**")
		assert.Nil(t, req.Schema)
	})

	t.Run("empty reply", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText("   ")
		assert.Equal(t, TheoryEmpty, f.client.GenerateTheory(ctx, l))
	})

	t.Run("remote failure is logged", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newFixture(t, testKey, WithLogger(zap.New(core)))
		f.mock.AddError(&llm.ErrProviderUnavailable{Err: errors.New("403 API key not valid")})

		assert.Equal(t, TheoryFailed, f.client.GenerateTheory(ctx, l))
		entries := logs.FilterMessage("content generation failed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, PurposeTheory, fields["op"])
		assert.Equal(t, "l1", fields["lesson"])
	})
}

func TestGenerateQuiz(t *testing.T) {
	ctx := context.Background()
	l := lesson(t, "l4")

	t.Run("valid", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(quizJSON)})

		qs := f.client.GenerateQuiz(ctx, l)
		require.Len(t, qs, 2)
		assert.Equal(t, 2, qs[0].CorrectAnswer)
		assert.Equal(t, []string{"J/kg.K", "J", "K", "W"}, qs[1].Options)

		req, _ := f.mock.LastCall()
		assert.Same(t, QuizSchema, req.Schema)
		assert.Contains(t, req.Messages[0].Content, `"`+l.Title+`" (`+l.Chapter+`)`)
	})

	t.Run("malformed text", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText("Đây không phải JSON")
		assert.Empty(t, f.client.GenerateQuiz(ctx, l))
	})

	t.Run("schema mismatch", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText(`[{"id": 1, "question": "thiếu đáp án"}]`)
		assert.Empty(t, f.client.GenerateQuiz(ctx, l))
	})

	t.Run("answer index out of range", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText(`[
			{"id": 1, "question": "a", "options": ["x", "y"], "correctAnswer": 1, "explanation": ""},
			{"id": 2, "question": "b", "options": ["x", "y"], "correctAnswer": 3, "explanation": ""}
		]`)
		assert.Empty(t, f.client.GenerateQuiz(ctx, l), "no partial results")
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddError(&llm.ErrRateLimit{Err: errors.New("quota")})
		assert.Empty(t, f.client.GenerateQuiz(ctx, l))
		assert.Equal(t, 1, f.mock.CallCount(), "no retries")
	})
}

func TestGenerateSimulation(t *testing.T) {
	ctx := context.Background()
	l := lesson(t, "l9")

	t.Run("image replaced", func(t *testing.T) {
		f := newFixture(t, testKey, WithRand(func(n int) int {
			assert.Equal(t, 1000, n)
			return 42
		}))
		f.mock.AddText(`{"title": "Nam châm và kim la bàn", "description": "d", "scenario": "s", "imageUrl": "https://example.com/magnet.png"}`)

		sim := f.client.GenerateSimulation(ctx, l)
		require.NotNil(t, sim)
		assert.Equal(t, "Nam châm và kim la bàn", sim.Title)
		assert.Equal(t, "https://picsum.photos/800/400?random=42", sim.ImageURL)
	})

	t.Run("default random stays in range", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText(`{"title": "t", "description": "d", "scenario": "s", "imageUrl": "raw"}`)

		sim := f.client.GenerateSimulation(ctx, l)
		require.NotNil(t, sim)
		assert.NotEqual(t, "raw", sim.ImageURL)
		require.True(t, strings.HasPrefix(sim.ImageURL, PlaceholderImagePrefix))
		n := strings.TrimPrefix(sim.ImageURL, PlaceholderImagePrefix)
		assert.Regexp(t, `^[0-9]{1,3}$`, n)
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t, testKey)
		f.mock.AddText(`not json`)
		assert.Nil(t, f.client.GenerateSimulation(ctx, l))
	})
}

func TestSendChatMessage(t *testing.T) {
	ctx := llm.WithLesson(context.Background(), "l12")
	l := lesson(t, "l12")

	history := []ChatMessage{
		{Role: RoleModel, Text: Greeting(l.Title)},
		{Role: RoleUser, Text: "Hạt nhân là gì?"},
		{Role: RoleModel, Text: "Là phần trung tâm của nguyên tử."},
	}

	f := newFixture(t, testKey)
	f.mock.AddText("Gồm proton và neutron.")

	got := f.client.SendChatMessage(ctx, history, "Cấu tạo thế nào?", l.Title)
	assert.Equal(t, "Gồm proton và neutron.", got)

	req, _ := f.mock.LastCall()
	assert.Contains(t, req.System, "Bối cảnh hiện tại là bài học: "+l.Title+".")
	assert.Contains(t, req.System, "ngắn gọn, chính xác, khuyến khích tư duy")
	require.Len(t, req.Messages, 4)
	assert.Equal(t, llm.RoleAssistant, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Cấu tạo thế nào?"}, req.Messages[3])

	f.mock.AddError(errors.New("connection reset"))
	assert.Equal(t, ChatFailed, f.client.SendChatMessage(ctx, history, "Còn gì nữa?", l.Title))

	f.mock.AddText("")
	assert.Equal(t, ChatFailed, f.client.SendChatMessage(ctx, history, "Còn gì nữa?", l.Title))
}

func TestCredentialChangeRebuildsProvider(t *testing.T) {
	ctx := context.Background()
	l := lesson(t, "l1")
	f := newFixture(t, testKey)
	f.mock.AddText("a")
	f.mock.AddText("b")
	f.mock.AddText("c")

	f.client.GenerateTheory(ctx, l)
	f.client.GenerateTheory(ctx, l)
	assert.Equal(t, 1, f.builds, "provider is cached")

	require.NoError(t, f.creds.Save(ctx, "AIzaSyAnotherKey98765"))
	f.client.GenerateTheory(ctx, l)
	assert.Equal(t, 2, f.builds)
	assert.Equal(t, []string{testKey, "AIzaSyAnotherKey98765"}, f.keys)

	require.NoError(t, f.creds.Clear(ctx))
	assert.Equal(t, TheoryNotConfigured, f.client.GenerateTheory(ctx, l))
	assert.Equal(t, 2, f.builds)
}

func TestConcurrentIdenticalRequestsShareOneCall(t *testing.T) {
	ctx := context.Background()
	l := lesson(t, "l5")
	f := newFixture(t, testKey)

	release := make(chan struct{})
	f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage("## Khí lý tưởng"), Wait: release})

	// Build the provider up front so both goroutines hit the same flight.
	_, err := f.client.providerFor(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.client.GenerateTheory(ctx, l)
		}()
	}

	require.Eventually(t, func() bool { return f.mock.CallCount() == 1 }, time.Second, time.Millisecond)
	// Give the second caller time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []string{"## Khí lý tưởng", "## Khí lý tưởng"}, results)
	assert.Equal(t, 1, f.mock.CallCount())
}

func TestGreeting(t *testing.T) {
	assert.Equal(t,
		`Xin chào! Mình là trợ lý AI. Bạn có thắc mắc gì về bài "Bài 1: Cấu trúc của chất" không?`,
		Greeting("Bài 1: Cấu trúc của chất"))
}

func TestGenerateQuizRenumbersDuplicateIDs(t *testing.T) {
	f := newFixture(t, testKey)
	f.mock.AddText(`[
		{"id": 1, "question": "a", "options": ["x", "y"], "correctAnswer": 0, "explanation": ""},
		{"id": 1, "question": "b", "options": ["x", "y"], "correctAnswer": 1, "explanation": ""}
	]`)

	qs := f.client.GenerateQuiz(context.Background(), lesson(t, "l13"))
	require.Len(t, qs, 2)
	assert.Equal(t, 1, qs[0].ID)
	assert.Equal(t, 2, qs[1].ID)
}
