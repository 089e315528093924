package questions

import (
	"fmt"
	"strings"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
)

const systemPrompt = `You write practice questions for professional inspection and welding certification exams.

Rules:
- Questions must be answerable from the published body of knowledge for the named exam.
- Prefer closed-book recall and short code calculations that mirror the real exam.
- For multiple_choice, give exactly 4 options. Exactly one is correct; distractors reflect common misreadings of the code.
- For true_false, leave options empty and answer "True" or "False".
- The answer must be the exact text of the correct option.
- Cite the governing clause in "reference" when one exists.
- Keep the explanation short and factual.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message for one batch.
func buildUserMessage(e catalog.Exam, req Request, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exam: %s (%s)\n", e.Name, e.Description)
	fmt.Fprintf(&b, "Certifying body: %s\n", e.Body)
	if req.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.Category)
	} else {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(e.Categories, ", "))
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)
	if req.Mode == exam.ModePractice {
		b.WriteString("Audience: practice mode, explanations are shown after each question.\n")
	} else {
		b.WriteString("Audience: timed mock exam.\n")
	}

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildAvoid(req.Avoid, cfg.MaxAvoid))

	return b.String()
}

// buildAvoid formats prior prompts, keeping only the most recent max.
func buildAvoid(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
