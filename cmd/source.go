package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/llm"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/store"
)

// buildSource picks the question source from the config: the LLM when
// one is configured (or required), the embedded banks otherwise. The
// returned note describes the choice for the home screen.
func buildSource(ctx context.Context, events store.EventRepo) (questions.Source, string, error) {
	if cfg.UseLLM() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, events)
		if err == nil {
			log.Info().Str("provider", cfg.LLM.Provider).Str("model", provider.ModelID()).Msg("using LLM question source")
			return questions.NewLLMSource(provider, questions.DefaultConfig()), "Questions by " + provider.ModelID(), nil
		}
		if cfg.Questions.Source == "llm" {
			return nil, "", fmt.Errorf("LLM provider: %w", err)
		}
		log.Warn().Err(err).Msg("LLM provider unavailable, using built-in questions")
	}

	seed := cfg.Questions.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return questions.NewStaticSource(seed), "Built-in question bank (set an LLM API key for fresh questions)", nil
}
