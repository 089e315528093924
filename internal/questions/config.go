package questions

// AvoidDepth is how many prior prompts callers look up for Request.Avoid.
const AvoidDepth = 20

// Config controls the behavior of the LLMSource.
type Config struct {
	// Validators run on every generated question, in order. The first
	// failure drops the question.
	Validators []Validator

	// MaxTokensPerQuestion is multiplied by the batch size to get the
	// token budget for the LLM response.
	MaxTokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoid caps how many prior prompts are listed in the user message.
	MaxAvoid int

	// MaxBatch is the largest count accepted in one request.
	MaxBatch int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoicesValidator{},
		},
		MaxTokensPerQuestion: 400,
		Temperature:          0.7,
		MaxAvoid:             AvoidDepth,
		MaxBatch:             50,
	}
}
