package questions

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/llm"
)

// LLMSource implements Source using an LLM provider. Retries belong to
// the provider chain; a batch that comes back short fails outright.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// NewLLMSource creates an LLMSource with the given provider and config.
func NewLLMSource(provider llm.Provider, cfg Config) *LLMSource {
	return &LLMSource{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []exam.Question `json:"questions"`
}

func (s *LLMSource) Generate(ctx context.Context, req Request) ([]exam.Question, error) {
	e, err := checkRequest(req, s.config.MaxBatch)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(e, req, s.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   s.config.MaxTokensPerQuestion * req.Count,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, errors.GenerationFailed(err, "generate %s questions", e.Name)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, errors.GenerationFailed(err, "parse %s questions", e.Name)
	}

	qs, rejected := validate(out.Questions, s.config.Validators)
	for _, r := range rejected {
		log.Debug().Str("exam", e.Name).Str("reason", r).Msg("rejected generated question")
	}
	if len(qs) < req.Count {
		return nil, errors.GenerationFailed(nil,
			"only %d of %d %s questions were valid", len(qs), req.Count, e.Name)
	}

	qs = qs[:req.Count]
	for i := range qs {
		if qs[i].Category == "" {
			qs[i].Category = req.Category
		}
	}
	return qs, nil
}

// checkRequest resolves the exam and rejects unusable counts and categories.
func checkRequest(req Request, maxBatch int) (catalog.Exam, error) {
	e, ok := catalog.Lookup(req.Exam)
	if !ok {
		return catalog.Exam{}, errors.NotFound("unknown exam %q", req.Exam)
	}
	if req.Count <= 0 {
		return catalog.Exam{}, errors.InvalidInput("question count must be positive, got %d", req.Count)
	}
	if maxBatch > 0 && req.Count > maxBatch {
		return catalog.Exam{}, errors.InvalidInput("question count %d exceeds the limit of %d", req.Count, maxBatch)
	}
	if c := strings.TrimSpace(req.Category); c != "" && !e.HasCategory(c) {
		return catalog.Exam{}, errors.InvalidInput("%s has no category %q", e.Name, c)
	}
	return e, nil
}
