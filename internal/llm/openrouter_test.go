package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		wantErr bool
	}{
		{"default base URL", OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"}, false},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b", BaseURL: "https://gw.example/v1"}, false},
		{"empty API key", OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Vendor-prefixed IDs are not mapped.
			if p.ModelID() != tt.cfg.Model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.cfg.Model)
			}
		})
	}
}

func TestOpenRouterProvider_SendsAttributionHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "gen-1",
			"object": "chat.completion",
			"model":  "anthropic/claude-3-haiku",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"questions":[]}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 5, "total_tokens": 35},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-3-haiku",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write API 510 practice questions.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate 0 questions."}},
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"questions":[]}` {
		t.Errorf("content = %s", resp.Content)
	}
	if got.Get("X-Title") != "CertPrep" {
		t.Errorf("X-Title = %q, want CertPrep", got.Get("X-Title"))
	}
	if got.Get("HTTP-Referer") == "" {
		t.Error("missing HTTP-Referer")
	}
	if got.Get("Authorization") != "Bearer sk-or-test" {
		t.Errorf("authorization = %q", got.Get("Authorization"))
	}
}
