// Package questions produces exam questions from an LLM or from the
// embedded question banks.
package questions

import (
	"context"

	"github.com/abhisek/certprep/internal/exam"
)

// Source produces a batch of questions for one attempt.
type Source interface {
	// Generate returns exactly req.Count questions or an error with code
	// GenerationFailed.
	Generate(ctx context.Context, req Request) ([]exam.Question, error)
}

// Request describes the batch a Source should produce.
type Request struct {
	// Exam is a catalog ID or display name.
	Exam  string
	Count int
	Mode  exam.Mode

	// Category narrows the batch to one body-of-knowledge area. Empty
	// means the whole exam.
	Category string

	// Avoid lists prompts the user has already seen, most recent last.
	Avoid []string
}
