package stats

import (
	"testing"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/store"
)

func results(pcts ...float64) []exam.QuizResult {
	out := make([]exam.QuizResult, len(pcts))
	for i, p := range pcts {
		out[i] = exam.QuizResult{Percentage: p}
	}
	return out
}

func TestSummarize(t *testing.T) {
	s := Summarize(results(80, 50, 65))
	if s.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", s.Attempts)
	}
	if s.Latest != 80 {
		t.Errorf("Latest = %v, want 80", s.Latest)
	}
	if s.Best != 80 {
		t.Errorf("Best = %v, want 80", s.Best)
	}
	if s.Average != 65 {
		t.Errorf("Average = %v, want 65", s.Average)
	}

	if got := Summarize(nil); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name string
		in   []exam.QuizResult
		want float64
	}{
		{"no history", nil, 0},
		{"single attempt", results(70), 70},
		{"weighted", results(80, 50, 65), 0.6*65 + 0.4*80},
		{"perfect", results(100, 100), 100},
		{"zero", results(0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Readiness(tt.in); got != tt.want {
				t.Errorf("Readiness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeaknesses(t *testing.T) {
	cats := []store.CategoryStat{
		{Category: "Weld Symbols", Answered: 10, Correct: 9},
		{Category: "Metallurgy", Answered: 4, Correct: 1},
		{Category: "Safety", Answered: 2, Correct: 0},
		{Category: "Discontinuities", Answered: 8, Correct: 2},
		{Category: "", Answered: 20, Correct: 0},
	}

	got := Weaknesses(cats, 3)
	want := []string{"Discontinuities", "Metallurgy", "Weld Symbols"}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Category != w {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Category, w)
		}
	}
}

func TestBuild(t *testing.T) {
	d := Build(results(60), []store.CategoryStat{{Category: "Safety", Answered: 3, Correct: 3}}, "CWI")
	if d.Exam != "CWI" || d.Readiness != 60 || len(d.Weaknesses) != 1 {
		t.Errorf("Build = %+v", d)
	}
}
