package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/store"
)

func seededRepo(t *testing.T, n int) store.ResultRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	repo := st.ResultRepo()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := range n {
		res := &exam.QuizResult{
			ID:          "r" + string(rune('a'+i)),
			ExamName:    "Certified Welding Inspector",
			Mode:        exam.ModePractice,
			Score:       i,
			Total:       5,
			Percentage:  exam.Percentage(i, 5),
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			CompletedAt: base.Add(time.Duration(i)*time.Hour + 10*time.Minute),
			Answers: []exam.UserAnswer{
				{Index: 0, Prompt: "Q", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
			},
		}
		if err := repo.Record(context.Background(), res); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	return repo
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(seededRepo(t, 0))
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading view before Init completes")
	}
	load(s)
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryScreen_ListsNewestFirst(t *testing.T) {
	s := New(seededRepo(t, 3))
	load(s)
	if len(s.list) != 3 {
		t.Fatalf("list = %d, want 3", len(s.list))
	}
	if s.list[0].ID != "rc" {
		t.Errorf("first = %s, want rc", s.list[0].ID)
	}
	if !strings.Contains(s.View(120, 30), "Certified Welding Inspector") {
		t.Error("expected exam name in view")
	}
}

func TestHistoryScreen_EnterOpensSummary(t *testing.T) {
	s := New(seededRepo(t, 2))
	load(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "Results" {
		t.Errorf("pushed %q, want Results", push.Screen.Title())
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := New(seededRepo(t, 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
