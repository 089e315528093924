package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/router"
	sessionscreen "github.com/abhisek/certprep/internal/screens/session"
	"github.com/abhisek/certprep/internal/store"
)

func testOptions(t *testing.T) (sessionscreen.Options, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return sessionscreen.Options{
		Source:    questions.NewStaticSource(1),
		Results:   st.ResultRepo(),
		Snapshots: st.SnapshotRepo(),
	}, st
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_Defaults(t *testing.T) {
	opts, _ := testOptions(t)
	h := New(opts, "")
	if h.mode != exam.ModeExam || h.count != defaultCount {
		t.Errorf("mode=%s count=%d, want exam/%d", h.mode, h.count, defaultCount)
	}
	if !h.menu.Items[itemResume].Disabled {
		t.Error("resume should be disabled without a saved session")
	}
	if h.View(120, 40) == "" {
		t.Error("expected non-empty view")
	}
}

func TestHomeScreen_SetupKeys(t *testing.T) {
	opts, _ := testOptions(t)
	h := New(opts, "")

	h.Update(key('m'))
	if h.mode != exam.ModePractice {
		t.Errorf("mode = %s, want practice", h.mode)
	}
	if h.timeLimit() != 0 {
		t.Error("practice mode should be untimed")
	}

	h.Update(key('+'))
	if h.count != defaultCount+countStep {
		t.Errorf("count = %d, want %d", h.count, defaultCount+countStep)
	}
	for range 10 {
		h.Update(key('-'))
	}
	if h.count != 1 {
		t.Errorf("count = %d, want 1", h.count)
	}

	first := h.exams[0].ID
	h.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if h.exams[h.examIdx].ID == first {
		t.Error("expected right arrow to change exam")
	}
	h.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if h.exams[h.examIdx].ID != first {
		t.Error("expected left arrow to go back")
	}
}

func TestHomeScreen_StartPushesSession(t *testing.T) {
	opts, _ := testOptions(t)
	h := New(opts, "")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from START EXAM")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Errorf("pushed %T, want session screen", push.Screen)
	}
}

func TestHomeScreen_ResumeEnabledAfterSave(t *testing.T) {
	opts, st := testOptions(t)

	sess, err := exam.Start([]exam.Question{
		{Prompt: "Q", Kind: exam.KindTrueFalse, Answer: "True"},
	}, exam.Config{ExamName: "CWI", Mode: exam.ModeExam, TimeLimit: 60})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.SaveAndExit(context.Background(), st.SnapshotRepo()); err != nil {
		t.Fatal(err)
	}

	h := New(opts, "offline question bank")
	h.Update(h.Init()())
	if h.menu.Items[itemResume].Disabled {
		t.Fatal("resume should be enabled with a saved session")
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "Saved: CWI") {
		t.Error("expected saved session note")
	}
	if !strings.Contains(view, "offline question bank") {
		t.Error("expected source note")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != itemResume {
		t.Fatalf("selected = %d, want resume", h.menu.Selected)
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected resume to push a screen")
	}
}

func TestHomeScreen_NoResultsDisablesHistory(t *testing.T) {
	h := New(sessionscreen.Options{Source: questions.NewStaticSource(1)}, "")
	if h.Init() != nil {
		t.Error("expected no init command without a snapshot repo")
	}
	if !h.menu.Items[itemHistory].Disabled || !h.menu.Items[itemDashboard].Disabled {
		t.Error("history and dashboard need a result repo")
	}
}
