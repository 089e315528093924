package questions

import "github.com/abhisek/certprep/internal/llm"

// BatchSchema is the JSON schema for a batch of generated questions.
var BatchSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of certification exam practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the candidate",
						},
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple_choice", "true_false"},
							"description": "multiple_choice needs options; true_false has implicit True/False options",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Four options for multiple_choice. Empty array for true_false.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option, or True/False",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "The body-of-knowledge category this question tests",
						},
						"reference": map[string]any{
							"type":        "string",
							"description": "Code or standard clause the answer comes from, e.g. API 510 7.4.2",
						},
						"quote": map[string]any{
							"type":        "string",
							"description": "Short supporting quote from the reference, or empty",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct and the distractors are not",
						},
					},
					"required":             []any{"prompt", "kind", "options", "answer", "category", "reference", "quote", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
