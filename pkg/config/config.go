// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	Provider    string `env:"INFERENCE_PROVIDER" envDefault:"openai"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL"`
	GeminiKey   string `env:"GEMINI_API_KEY"`
	GeminiModel string `env:"GEMINI_MODEL"`
	GrokKey     string `env:"GROK_API_KEY"`
	GrokModel   string `env:"GROK_MODEL"`

	TavilyKey    string `env:"TAVILY_API_KEY"`
	StabilityKey string `env:"STABILITY_API_KEY"`

	StorePath    string        `env:"STORE_PATH" envDefault:"adforge.db"`
	OutputDir    string        `env:"OUTPUT_DIR" envDefault:"outputs"`
	NumCampaigns int           `env:"NUM_CAMPAIGNS" envDefault:"5"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// APIKey returns the key for the configured provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case "gemini":
		return c.GeminiKey
	case "grok":
		return c.GrokKey
	}
	return c.OpenAIKey
}

// Model returns the model override for the configured provider, empty for
// the provider default.
func (c Config) Model() string {
	switch c.Provider {
	case "gemini":
		return c.GeminiModel
	case "grok":
		return c.GrokModel
	}
	return c.OpenAIModel
}
