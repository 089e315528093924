// Package exam implements the state machine for a single exam attempt:
// answer locking, flags, strikethrough, navigation, review, timed
// auto-submit and save-and-resume.
package exam

import "slices"

// Kind is the answer format of a question.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
)

// Question is immutable once produced by a question source.
type Question struct {
	Prompt string `json:"prompt"`
	Kind   Kind   `json:"kind"`

	// Options is the ordered list of choices. Empty for true/false
	// questions, which use TrueFalseOptions.
	Options []string `json:"options,omitempty"`

	// Answer must equal one of Choices().
	Answer string `json:"answer"`

	Category    string `json:"category,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Quote       string `json:"quote,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// TrueFalseOptions are the implicit choices of a true/false question.
var TrueFalseOptions = []string{"True", "False"}

// Choices returns the selectable options in display order.
func (q Question) Choices() []string {
	if q.Kind == KindTrueFalse && len(q.Options) == 0 {
		return TrueFalseOptions
	}
	return q.Options
}

// HasChoice reports whether option is one of the question's choices.
func (q Question) HasChoice(option string) bool {
	return slices.Contains(q.Choices(), option)
}

// IsCorrect reports whether answer matches the correct answer exactly.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.Answer
}
