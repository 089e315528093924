package llm

import (
	"context"
	"math"
	"testing"
)

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "bard"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_WrapsWithRetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anthropic.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, &fakeEventRepo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected *RetryProvider, got %T", p)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "gm-key" {
		t.Fatalf("expected gemini to win over openrouter, got %q", cfg.Provider)
	}

	t.Setenv("ANTHROPIC_API_KEY", "an-key")
	cfg, _ = DiscoverConfig(DefaultConfig())
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic first, got %q", cfg.Provider)
	}
}

func TestConfig_ValidateMessageNamesEnvVar(t *testing.T) {
	err := Config{Provider: "gemini"}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "CERTPREP_LLM_GEMINI_API_KEY is required for the gemini provider" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("cost = %v, want 0.75", got)
	}
	if LookupCost("openai/gpt-4o") == nil {
		t.Fatal("expected vendor-prefixed id to resolve")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
