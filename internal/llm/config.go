package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration. Defaults live in the
// envDefault tags so DefaultConfig and ConfigFromEnv cannot drift apart.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `env:"STUDIOSIM_LLM_PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig     `envPrefix:"STUDIOSIM_GEMINI_"`
	Anthropic  AnthropicConfig  `envPrefix:"STUDIOSIM_ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"STUDIOSIM_OPENAI_"`
	OpenRouter OpenRouterConfig `envPrefix:"STUDIOSIM_OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"STUDIOSIM_LLM_RETRY_"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `env:"STUDIOSIM_LLM_TIMEOUT" envDefault:"30s"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2.0"`
}

// DefaultConfig returns a Config populated only from the envDefault tags.
func DefaultConfig() Config {
	cfg, err := LoadConfig(map[string]string{})
	if err != nil {
		// Only reachable if a default tag is malformed.
		panic(fmt.Sprintf("llm: invalid default config: %v", err))
	}
	return cfg
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	return LoadConfig(nil)
}

// LoadConfig parses a Config from the given environment map. A nil map
// reads the process environment.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// discoveryKeys lists the well-known API key variables checked when no
// STUDIOSIM_* key is set, in priority order. API_KEY is what the web
// version of the simulator read for its Gemini client.
var discoveryKeys = []struct {
	name     string
	provider string
}{
	{"GEMINI_API_KEY", "gemini"},
	{"API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// ResolveConfig loads the configuration and, when the selected provider
// has no key, falls back to the first standard API key variable found.
// It returns ErrNotConfigured when nothing usable is set.
func ResolveConfig(environ map[string]string) (Config, error) {
	cfg, err := LoadConfig(environ)
	if err != nil {
		return Config{}, err
	}
	if cfg.Validate() == nil {
		return cfg, nil
	}

	lookup := func(k string) string {
		if environ != nil {
			return environ[k]
		}
		return os.Getenv(k)
	}

	for _, dk := range discoveryKeys {
		key := lookup(dk.name)
		if key == "" {
			continue
		}
		cfg.Provider = dk.provider
		cfg.SetAPIKey(key)
		return cfg, nil
	}
	return Config{}, ErrNotConfigured
}

// SetAPIKey stores key on the currently selected provider.
func (c *Config) SetAPIKey(key string) {
	switch c.Provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("STUDIOSIM_GEMINI_API_KEY is required for the gemini provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("STUDIOSIM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("STUDIOSIM_OPENAI_API_KEY is required for the openai provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("STUDIOSIM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
