// Package catalog holds the certification exams a user can practise.
package catalog

import (
	"strings"

	"github.com/abhisek/certprep/internal/exam"
)

// Exam describes one certification exam and its body of knowledge.
type Exam struct {
	ID          string
	Name        string
	Body        string // Certifying body, e.g. API or AWS
	Description string

	// Categories are the body-of-knowledge areas questions are drawn from.
	Categories []string

	// QuestionCount is the default number of questions per attempt.
	QuestionCount int

	// TimeLimitMins is the timed-mode limit for QuestionCount questions.
	TimeLimitMins int
}

// TimeLimitSecs scales the catalog limit to count questions for timed
// mode. Practice mode is always untimed.
func (e Exam) TimeLimitSecs(mode exam.Mode, count int) int {
	if mode != exam.ModeExam {
		return 0
	}
	if count <= 0 {
		count = e.QuestionCount
	}
	secs := e.TimeLimitMins * 60 * count / e.QuestionCount
	if secs < 60 {
		secs = 60
	}
	return secs
}

// HasCategory reports whether c is one of the exam's categories.
func (e Exam) HasCategory(c string) bool {
	for _, ec := range e.Categories {
		if strings.EqualFold(ec, c) {
			return true
		}
	}
	return false
}

// All returns every exam in display order.
func All() []Exam {
	out := make([]Exam, len(exams))
	copy(out, exams)
	return out
}

// Get looks an exam up by ID, ignoring case.
func Get(id string) (Exam, bool) {
	e, ok := byID[strings.ToLower(id)]
	return e, ok
}

// ByName looks an exam up by display name, ignoring case.
func ByName(name string) (Exam, bool) {
	for _, e := range exams {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Exam{}, false
}

// Lookup accepts either an ID or a display name.
func Lookup(s string) (Exam, bool) {
	if e, ok := Get(s); ok {
		return e, true
	}
	return ByName(s)
}

// ParseMode maps a user-supplied string onto a mode. Empty means practice.
func ParseMode(s string) (exam.Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "practice":
		return exam.ModePractice, true
	case "exam", "timed":
		return exam.ModeExam, true
	default:
		return "", false
	}
}
