package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter ranks apps by these optional attribution headers.
const (
	openRouterReferer = "https://github.com/abhisek/certprep"
	openRouterTitle   = "CertPrep"
)

// OpenRouterProvider reuses the OpenAI client against OpenRouter's
// OpenAI-compatible API. Model IDs are vendor-prefixed and used as is.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, openRouterHeaders())
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func openRouterHeaders() http.Header {
	h := make(http.Header)
	h.Set("HTTP-Referer", openRouterReferer)
	h.Set("X-Title", openRouterTitle)
	return h
}
