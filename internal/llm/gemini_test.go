package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": "integer"},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{"type": "integer", "description": "Index of the correct answer (0-3)"},
			},
			"required": []any{"id", "question", "options", "correctAnswer"},
		},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "ARRAY" {
		t.Fatalf("expected ARRAY type, got %s", schema.Type)
	}
	item := schema.Items
	if item == nil || item.Type != "OBJECT" {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if len(item.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(item.Properties))
	}
	if item.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("expected STRING option items, got %s", item.Properties["options"].Items.Type)
	}
	if item.Properties["correctAnswer"].Description == "" {
		t.Fatal("expected description to be carried over")
	}
	if len(item.Required) != 4 {
		t.Fatalf("expected 4 required fields, got %d", len(item.Required))
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleAssistant, Content: "Xin chào!"},
		{Role: RoleUser, Content: "Định luật Boyle là gì?"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "model" || contents[1].Role != "user" {
		t.Fatalf("unexpected roles %q, %q", contents[0].Role, contents[1].Role)
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "AIza-test", Model: "gemini-flash"}, server.URL)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	}
}

func TestGeminiProvider_Chat(t *testing.T) {
	var body map[string]any
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("Áp suất tỉ lệ nghịch với thể tích.", "STOP"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "Bạn là trợ lý ảo chuyên về Vật Lý 12.",
		Messages: []Message{
			{Role: RoleAssistant, Content: "Xin chào!"},
			{Role: RoleUser, Content: "Định luật Boyle là gì?"},
		},
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Áp suất tỉ lệ nghịch với thể tích." {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 34 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if p.ModelID() != "gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}

	contents, _ := body["contents"].([]any)
	if len(contents) != 2 {
		t.Fatalf("expected 2 turns in request, got %d", len(contents))
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Fatal("expected systemInstruction in request")
	}
}

func TestGeminiProvider_StructuredInvalid(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`not json`, "STOP"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "numbers"}},
		Schema:    intArraySchema(),
		MaxTokens: 64,
	})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource has been exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 64,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestNewGeminiProvider_MissingKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{}, "")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}
