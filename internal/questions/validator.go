package questions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/certprep/internal/exam"
)

// Validator checks a generated question. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(q *exam.Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *exam.Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	switch {
	case strings.TrimSpace(q.Prompt) == "":
		return fail("prompt is empty")
	case len(q.Prompt) > 1000:
		return fail("prompt exceeds 1000 characters")
	case q.Kind != exam.KindMultipleChoice && q.Kind != exam.KindTrueFalse:
		return fail(`kind must be "multiple_choice" or "true_false"`)
	case strings.TrimSpace(q.Answer) == "":
		return fail("answer is empty")
	case len(q.Explanation) > 2000:
		return fail("explanation exceeds 2000 characters")
	}
	return nil
}

// ChoicesValidator checks the option list: the answer must be one of the
// choices, choices are distinct, and true/false questions use exactly
// True and False.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *exam.Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if q.Kind == exam.KindTrueFalse {
		if len(q.Options) != 0 && !slices.Equal(q.Options, exam.TrueFalseOptions) {
			return fail("true/false options must be %v", exam.TrueFalseOptions)
		}
	} else if n := len(q.Options); n < 2 || n > 9 {
		return fail("multiple choice needs 2 to 9 options, got %d", n)
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" {
			return fail("empty option")
		}
		if seen[key] {
			return fail("duplicate option %q", o)
		}
		seen[key] = true
	}

	if !q.HasChoice(q.Answer) {
		return fail("answer %q is not one of the options", q.Answer)
	}
	return nil
}

// normalize trims whitespace and fixes up true/false casing so that
// "true" from a model still matches the canonical "True" option.
func normalize(q *exam.Question) {
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Category = strings.TrimSpace(q.Category)
	for i, o := range q.Options {
		q.Options[i] = strings.TrimSpace(o)
	}
	if q.Kind == exam.KindTrueFalse {
		q.Options = nil
		for _, tf := range exam.TrueFalseOptions {
			if strings.EqualFold(q.Answer, tf) {
				q.Answer = tf
			}
		}
	}
}

// validate normalizes and checks every question, dropping failures and
// repeated prompts. It returns the survivors and the rejection reasons.
func validate(qs []exam.Question, validators []Validator) ([]exam.Question, []string) {
	var (
		out      = make([]exam.Question, 0, len(qs))
		rejected []string
		prompts  = make(map[string]bool, len(qs))
	)
	for i := range qs {
		q := qs[i]
		normalize(&q)

		var verr *ValidationError
		for _, v := range validators {
			if verr = v.Validate(&q); verr != nil {
				break
			}
		}
		if verr != nil {
			rejected = append(rejected, fmt.Sprintf("question %d: %v", i+1, verr))
			continue
		}

		key := strings.ToLower(q.Prompt)
		if prompts[key] {
			rejected = append(rejected, fmt.Sprintf("question %d: duplicate prompt", i+1))
			continue
		}
		prompts[key] = true
		out = append(out, q)
	}
	return out, rejected
}
