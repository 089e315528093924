package questions

import (
	"bytes"
	"context"
	"embed"
	"math/rand/v2"
	"path"
	"strings"
	"sync"

	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// StaticSource draws questions from the embedded banks. It needs no
// network and is the fallback when no LLM provider is configured.
type StaticSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	banks map[string][]exam.Question // keyed by catalog exam ID
}

// NewStaticSource loads the embedded banks. Equal seeds give equal
// selections for equal requests.
func NewStaticSource(seed uint64) *StaticSource {
	s := &StaticSource{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		banks: make(map[string][]exam.Question),
	}
	entries, _ := fixtureFS.ReadDir("fixtures")
	for _, ent := range entries {
		name := ent.Name()
		data, err := fixtureFS.ReadFile(path.Join("fixtures", name))
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		s.banks[id] = mustParse(name, bytes.NewReader(data)).Questions
	}
	return s
}

// Available reports how many embedded questions exist for an exam ID.
func (s *StaticSource) Available(examID string) int {
	return len(s.banks[strings.ToLower(examID)])
}

func (s *StaticSource) Generate(_ context.Context, req Request) ([]exam.Question, error) {
	e, err := checkRequest(req, 0)
	if err != nil {
		return nil, err
	}

	pool := s.banks[e.ID]
	if req.Category != "" {
		var filtered []exam.Question
		for _, q := range pool {
			if strings.EqualFold(q.Category, req.Category) {
				filtered = append(filtered, q)
			}
		}
		pool = filtered
	}
	if len(pool) == 0 {
		return nil, errors.GenerationFailed(nil, "no built-in questions for %s", e.Name)
	}
	if req.Count > len(pool) {
		return nil, errors.GenerationFailed(nil,
			"only %d built-in questions for %s, %d requested", len(pool), e.Name, req.Count)
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()

	out := make([]exam.Question, req.Count)
	for i := range out {
		q := pool[perm[i]]
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out, nil
}
