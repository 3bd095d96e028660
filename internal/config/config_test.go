package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; the variable must then be unset so
	// envDefault tags apply.
	for _, key := range []string{"TONIGHT_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "BOT_DELIBERATION", "LOG_LEVEL", "DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderStatic {
		t.Errorf("expected static fallback without api key, got %q", cfg.Provider)
	}
	if cfg.BotDeliberation != 2500*time.Millisecond {
		t.Errorf("expected default deliberation 2.5s, got %v", cfg.BotDeliberation)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_OpenAIWithKey(t *testing.T) {
	t.Setenv("TONIGHT_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("BOT_DELIBERATION", "100ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected openai provider, got %q", cfg.Provider)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("expected model override, got %q", cfg.OpenAIModel)
	}
	if cfg.BotDeliberation != 100*time.Millisecond {
		t.Errorf("expected 100ms deliberation, got %v", cfg.BotDeliberation)
	}
}
