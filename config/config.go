// Package config loads planweave configuration from the environment and
// optional YAML files. Environment variables win over file values; a .env
// file in the working directory is honored for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by the Provider field.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// MissingKeyError reports a required setting that was not provided. It is
// surfaced before any task starts.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required configuration %s is missing; set it in the environment or a .env file", e.Key)
}

// Config holds the settings an agent needs before it can run tasks. The
// provider API key matching Provider is required; everything else has a
// usable default.
type Config struct {
	// Provider selects the reasoning model backend: openai, anthropic or
	// gemini.
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model name.
	Model string `yaml:"model,omitempty"`

	OpenAIAPIKey    string `yaml:"openai_api_key,omitempty"`
	AnthropicAPIKey string `yaml:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string `yaml:"gemini_api_key,omitempty"`

	// WeatherAPIKey is used by the bundled weather tools.
	WeatherAPIKey string `yaml:"weather_api_key,omitempty"`

	// LogLevel and LogFormat configure the structured logger
	// (debug|info|warn|error, text|json).
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

// Load reads configuration from the environment, after loading a .env file
// when one exists. The returned config is already validated.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider:        envOr("PLANWEAVE_PROVIDER", ProviderOpenAI),
		Model:           os.Getenv("PLANWEAVE_MODEL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		WeatherAPIKey:   os.Getenv("WEATHER_API_KEY"),
		LogLevel:        envOr("PLANWEAVE_LOG_LEVEL", "info"),
		LogFormat:       envOr("PLANWEAVE_LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads a YAML configuration file and overlays environment
// variables on top of it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		Provider:  ProviderOpenAI,
		LogLevel:  "info",
		LogFormat: "text",
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	_ = godotenv.Load()
	overlayEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected provider has its API key.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &MissingKeyError{Key: "OPENAI_API_KEY"}
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return &MissingKeyError{Key: "ANTHROPIC_API_KEY"}
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return &MissingKeyError{Key: "GEMINI_API_KEY"}
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	return nil
}

func overlayEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "PLANWEAVE_PROVIDER")
	set(&cfg.Model, "PLANWEAVE_MODEL")
	set(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	set(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	set(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	set(&cfg.WeatherAPIKey, "WEATHER_API_KEY")
	set(&cfg.LogLevel, "PLANWEAVE_LOG_LEVEL")
	set(&cfg.LogFormat, "PLANWEAVE_LOG_FORMAT")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
