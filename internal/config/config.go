// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider selects the generative backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderStatic Provider = "static"
)

type Config struct {
	// Generative backend
	Provider     Provider `env:"TONIGHT_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey string   `env:"OPENAI_API_KEY"`
	OpenAIModel  string   `env:"OPENAI_MODEL"`

	// Partner simulation
	BotDeliberation time.Duration `env:"BOT_DELIBERATION" envDefault:"2500ms"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Provider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		// No key means no backend to talk to; fall back to the offline
		// provider instead of failing at the first request.
		cfg.Provider = ProviderStatic
	}
	return cfg, nil
}
