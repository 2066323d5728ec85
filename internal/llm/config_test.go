package llm

import (
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"anthropic with key", func(c *Config) { c.Provider = "anthropic"; c.Anthropic.APIKey = "k" }, false},
		{"anthropic without key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"openai with key", func(c *Config) { c.Provider = "openai"; c.OpenAI.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) { c.Provider = "gemini" }, true},
		{"openrouter with key", func(c *Config) { c.Provider = "openrouter"; c.OpenRouter.APIKey = "k" }, false},
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "quantum" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no discovery with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery")
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-test" {
		t.Fatalf("key = %q", cfg.Anthropic.APIKey)
	}

	// gemini wins when both are present
	t.Setenv("GEMINI_API_KEY", "g-test")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("provider = %q, want gemini to take priority", cfg.Provider)
	}
}
