package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/store"
)

func seededRepo(t *testing.T) store.ResultRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cwi, _ := catalog.Get("cwi")
	repo := st.ResultRepo()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := range 2 {
		answers := make([]exam.UserAnswer, 4)
		for j := range answers {
			answers[j] = exam.UserAnswer{
				Index:         j,
				Prompt:        "Q",
				UserAnswer:    "A",
				CorrectAnswer: "A",
				IsCorrect:     j%2 == 0,
				Category:      "Weld Symbols",
			}
		}
		res := &exam.QuizResult{
			ID:          fmt.Sprintf("r%d", i),
			ExamName:    cwi.Name,
			Mode:        exam.ModeExam,
			Score:       2,
			Total:       4,
			Percentage:  50,
			Answers:     answers,
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			CompletedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if err := repo.Record(context.Background(), res); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	return repo
}

func TestDashboardScreen_AllExams(t *testing.T) {
	s := New(seededRepo(t))
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading state")
	}
	s.Update(s.Init()())

	if s.dash.Summary.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", s.dash.Summary.Attempts)
	}
	view := s.View(100, 30)
	for _, want := range []string{"All exams", "Readiness", "Weld Symbols", "Attempts 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboardScreen_TabCyclesFilter(t *testing.T) {
	s := New(seededRepo(t))
	s.Update(s.Init()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if cmd == nil {
		t.Fatal("expected reload on tab")
	}
	s.Update(cmd())
	if s.filters[s.filter] != catalog.All()[0].Name {
		t.Errorf("filter = %q, want %q", s.filters[s.filter], catalog.All()[0].Name)
	}
	if !s.loaded {
		t.Error("expected filter to load")
	}
}

func TestDashboardScreen_StaleLoadIgnored(t *testing.T) {
	s := New(seededRepo(t))
	stale := s.Init()()
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(stale)
	if s.loaded {
		t.Error("stale load for a previous filter should be ignored")
	}
}

func TestDashboardScreen_Empty(t *testing.T) {
	s := New(seededRepo(t))
	for s.filters[s.filter] == "" || s.filters[s.filter] == "CWI" {
		s.filter++
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty state for an exam with no attempts")
	}
}
