package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/store"
)

// Deps carries the optional collaborators of a built provider.
type Deps struct {
	EventRepo store.EventRepo
	Logger    *zap.Logger

	// Mock is returned (still decorated) when cfg.Provider is "mock".
	Mock *MockProvider
}

// NewProvider builds the provider selected by cfg with apiKey.
// The result is wrapped as caller → tracing → logging → base. No retry
// layer is added: failures surface to the caller immediately.
func NewProvider(ctx context.Context, cfg Config, apiKey string, deps Deps) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := cfg.ResolvedModel()

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(AnthropicConfig{APIKey: apiKey, Model: model})
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(OpenAIConfig{APIKey: apiKey, Model: model, BaseURL: cfg.BaseURL})
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(OpenRouterConfig{APIKey: apiKey, Model: model, BaseURL: cfg.BaseURL})
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, GeminiConfig{APIKey: apiKey, Model: model}, cfg.BaseURL)
	case ProviderOllama:
		base, err = NewOllamaProvider(OllamaConfig{ServerURL: cfg.BaseURL, Model: model}, &http.Client{Timeout: cfg.Timeout})
	case ProviderMock:
		if deps.Mock == nil {
			deps.Mock = NewMockProvider()
		}
		base = deps.Mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, deps.EventRepo, deps.Logger)
	return WithTracing(logged, cfg.Provider), nil
}
