// Package config loads runtime settings from config.yaml, VATLY12_*
// environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/website1975/vatly12CTST/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. VATLY12_LLM_PROVIDER.
const EnvPrefix = "VATLY12"

type Config struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	DB        DBConfig        `mapstructure:"db"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type LLMConfig struct {
	Provider  string        `mapstructure:"provider" validate:"required,oneof=gemini anthropic openai openrouter ollama mock"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url" validate:"omitempty,url"`
	OllamaURL string        `mapstructure:"ollama_url" validate:"omitempty,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxTokens int           `mapstructure:"max_tokens" validate:"gte=256,lte=65536"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	File   string `mapstructure:"file"`
}

type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

// Overrides are values set from command-line flags. Empty fields are ignored.
type Overrides struct {
	ConfigFile string
	DBPath     string
	Provider   string
	Model      string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.sample_ratio", 1.0)
}

// Load reads configuration. A missing config file is not an error; a
// malformed one is.
func Load(o Overrides) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if o.DBPath != "" {
		v.Set("db.path", o.DBPath)
	}
	if o.Provider != "" {
		v.Set("llm.provider", o.Provider)
	}
	if o.Model != "" {
		v.Set("llm.model", o.Model)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LLMSettings converts the llm section to provider settings.
func (c *Config) LLMSettings() llm.Config {
	out := llm.Config{
		Provider:  c.LLM.Provider,
		Model:     c.LLM.Model,
		BaseURL:   c.LLM.BaseURL,
		Timeout:   c.LLM.Timeout,
		MaxTokens: c.LLM.MaxTokens,
	}
	if out.Provider == llm.ProviderOllama && out.BaseURL == "" {
		out.BaseURL = c.LLM.OllamaURL
	}
	return out
}

func searchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "vatly12"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "vatly12"))
	}
	return append(dirs, ".")
}
