package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the built-in catalog.
func Validate() error {
	return validateExams(exams)
}

// validateExams returns a combined error describing every problem found.
func validateExams(list []Exam) error {
	var errs []string
	seen := make(map[string]bool, len(list))

	for _, e := range list {
		id := strings.ToLower(e.ID)
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("exam %q has an empty ID", e.Name))
		}
		if seen[id] {
			errs = append(errs, fmt.Sprintf("duplicate exam ID: %q", e.ID))
		}
		seen[id] = true

		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("exam %q has an empty name", e.ID))
		}
		if len(e.Categories) == 0 {
			errs = append(errs, fmt.Sprintf("exam %q has no categories", e.ID))
		}
		if e.QuestionCount <= 0 {
			errs = append(errs, fmt.Sprintf("exam %q: QuestionCount must be > 0, got %d", e.ID, e.QuestionCount))
		}
		if e.TimeLimitMins <= 0 {
			errs = append(errs, fmt.Sprintf("exam %q: TimeLimitMins must be > 0, got %d", e.ID, e.TimeLimitMins))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
