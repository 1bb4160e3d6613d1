package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaProvider implements Provider against a local Ollama server through
// langchaingo. It needs no API key. Ollama's JSON mode does not enforce a
// schema, so the schema is described in the system prompt and the reply is
// validated afterwards.
type OllamaProvider struct {
	client *ollama.LLM
	model  string
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.ServerURL.
func NewOllamaProvider(cfg OllamaConfig, httpClient *http.Client) (*OllamaProvider, error) {
	url := cfg.ServerURL
	if url == "" {
		url = defaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModels[ProviderOllama]
	}

	opts := []ollama.Option{
		ollama.WithServerURL(url),
		ollama.WithModel(model),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create Ollama client: %w", err)
	}
	return &OllamaProvider{client: client, model: model}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	wire, unwrap := prepareSchema(req.Schema)

	system := req.System
	callOpts := []llms.CallOption{}
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}
	if wire != nil {
		def, err := json.Marshal(wire.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		system = strings.TrimSpace(system + "\n\nChỉ trả về JSON hợp lệ theo JSON Schema sau:\n" + string(def))
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := p.client.GenerateContent(ctx, buildOllamaMessages(system, req.Messages), callOpts...)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no choices in Ollama response")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Content)
	if req.Schema != nil {
		if content, err = unwrap(content); err != nil {
			return nil, err
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	out := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: mapOllamaStopReason(choice.StopReason),
	}
	out.Usage.InputTokens = generationInt(choice.GenerationInfo, "PromptTokens")
	out.Usage.OutputTokens = generationInt(choice.GenerationInfo, "CompletionTokens")
	out.Usage.TotalTokens = out.Usage.InputTokens + out.Usage.OutputTokens
	return out, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(system string, msgs []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs)+1)
	if system != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, m := range msgs {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, m.Content))
	}
	return out
}

func mapOllamaStopReason(reason string) string {
	if reason == "length" {
		return "max_tokens"
	}
	return "end"
}

func generationInt(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
