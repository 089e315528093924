// Package stats turns stored results into the dashboard figures.
package stats

import (
	"math"
	"slices"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/store"
)

// Summary aggregates a list of attempts.
type Summary struct {
	Attempts int     `json:"attempts"`
	Average  float64 `json:"average"`
	Best     float64 `json:"best"`
	Latest   float64 `json:"latest"`
	TimedOut int     `json:"timed_out"`
}

// Summarize aggregates results. results must be newest first, as
// returned by store.ResultRepo.List.
func Summarize(results []exam.QuizResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	s.Attempts = len(results)
	s.Latest = results[0].Percentage
	var total float64
	for _, r := range results {
		total += r.Percentage
		s.Best = max(s.Best, r.Percentage)
		if r.TimedOut {
			s.TimedOut++
		}
	}
	s.Average = total / float64(len(results))
	return s
}

// Readiness scores how prepared the user is on a 0-100 scale, weighting
// the overall average at 0.6 and the latest attempt at 0.4. No history
// scores zero.
func Readiness(results []exam.QuizResult) float64 {
	if len(results) == 0 {
		return 0
	}
	s := Summarize(results)
	r := 0.6*s.Average + 0.4*s.Latest
	return math.Round(min(100, max(0, r))*100) / 100
}

// Weaknesses returns categories with at least minAttempts answers,
// weakest first. Ties break by more answers, then by name.
func Weaknesses(categories []store.CategoryStat, minAttempts int) []store.CategoryStat {
	out := make([]store.CategoryStat, 0, len(categories))
	for _, c := range categories {
		if c.Category == "" || c.Answered < minAttempts {
			continue
		}
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b store.CategoryStat) int {
		switch {
		case a.Accuracy() < b.Accuracy():
			return -1
		case a.Accuracy() > b.Accuracy():
			return 1
		case a.Answered != b.Answered:
			return b.Answered - a.Answered
		case a.Category < b.Category:
			return -1
		case a.Category > b.Category:
			return 1
		}
		return 0
	})
	return out
}

// Dashboard is everything the dashboard screen and endpoint show.
type Dashboard struct {
	Exam       string               `json:"exam,omitempty"`
	Summary    Summary              `json:"summary"`
	Readiness  float64              `json:"readiness"`
	Weaknesses []store.CategoryStat `json:"weaknesses"`
}

// DefaultMinAttempts is the smallest sample a category needs before it
// is ranked.
const DefaultMinAttempts = 3

// Build assembles a Dashboard for one exam, or for all exams when
// examName is empty.
func Build(results []exam.QuizResult, categories []store.CategoryStat, examName string) Dashboard {
	return Dashboard{
		Exam:       examName,
		Summary:    Summarize(results),
		Readiness:  Readiness(results),
		Weaknesses: Weaknesses(categories, DefaultMinAttempts),
	}
}
