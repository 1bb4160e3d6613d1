package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

// Config holds LLM provider configuration. The API key is not part of it;
// it is resolved per client build from the credential store.
type Config struct {
	// Provider selects the backend: gemini, anthropic, openai, openrouter,
	// ollama or mock.
	Provider string

	// Model overrides the provider default. Friendly aliases are resolved
	// per provider.
	Model string

	// BaseURL overrides the API endpoint (openai-compatible servers,
	// OpenRouter, or the Ollama server URL).
	BaseURL string

	// Timeout bounds a single request. Default: 60s.
	Timeout time.Duration

	// MaxTokens caps the response length. Default: 8192.
	MaxTokens int
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OllamaConfig holds configuration for a local Ollama server.
type OllamaConfig struct {
	ServerURL string
	Model     string
}

var defaultModels = map[string]string{
	ProviderGemini:     "gemini-2.5-flash",
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.5-flash",
	ProviderOllama:     "qwen3:0.6b",
	ProviderMock:       "mock",
}

// DefaultConfig returns the Gemini configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderGemini,
		Timeout:   60 * time.Second,
		MaxTokens: 8192,
	}
}

// ResolvedModel returns Model or the provider default.
func (c Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// NeedsKey reports whether the provider requires an API key.
func (c Config) NeedsKey() bool {
	return NeedsKey(c.Provider)
}

// Validate checks that the provider is known and limits are sane.
func (c Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative")
	}
	return nil
}

// NeedsKey reports whether provider requires an API key.
func NeedsKey(provider string) bool {
	switch provider {
	case ProviderOllama, ProviderMock:
		return false
	default:
		return true
	}
}

// KeyPrefix returns the prefix API keys for provider start with, or "" when
// the format is not checked.
func KeyPrefix(provider string) string {
	switch provider {
	case ProviderGemini:
		return "AIza"
	case ProviderAnthropic:
		return "sk-ant-"
	case ProviderOpenAI, ProviderOpenRouter:
		return "sk-"
	default:
		return ""
	}
}

// KeyURL returns where a user can create a key for provider.
func KeyURL(provider string) string {
	switch provider {
	case ProviderGemini:
		return "https://aistudio.google.com/app/apikey"
	case ProviderAnthropic:
		return "https://console.anthropic.com/settings/keys"
	case ProviderOpenAI:
		return "https://platform.openai.com/api-keys"
	case ProviderOpenRouter:
		return "https://openrouter.ai/keys"
	default:
		return ""
	}
}

// EnvKey probes API_KEY and then the provider's conventional variable
// (GEMINI_API_KEY, ANTHROPIC_API_KEY, ...). The result is trimmed.
func EnvKey(provider string) string {
	names := []string{"API_KEY"}
	if NeedsKey(provider) {
		names = append(names, strings.ToUpper(provider)+"_API_KEY")
	}
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}
