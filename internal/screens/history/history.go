package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/screens/summary"
	"github.com/abhisek/certprep/internal/store"
	"github.com/abhisek/certprep/internal/ui/layout"
	"github.com/abhisek/certprep/internal/ui/theme"
)

// historyLimit caps how many past attempts are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Results []exam.QuizResult
	Err     error
}

type resultLoadedMsg struct {
	Result *exam.QuizResult
	Err    error
}

// HistoryScreen lists past attempts, newest first.
type HistoryScreen struct {
	results  store.ResultRepo
	list     []exam.QuizResult
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(results store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{results: results}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.results
	return func() tea.Msg {
		list, err := repo.List(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Results: list, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.list = msg.Results
		s.selected = min(s.selected, max(0, len(s.list)-1))
		return s, nil

	case resultLoadedMsg:
		switch {
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		case msg.Result == nil:
			s.errMsg = "result no longer exists"
		default:
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: summary.New(msg.Result)}
			}
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.list)-1 {
				s.selected++
			}
		case "enter":
			if len(s.list) == 0 {
				return s, nil
			}
			repo, id := s.results, s.list[s.selected].ID
			return s, func() tea.Msg {
				res, err := repo.Get(context.Background(), id)
				return resultLoadedMsg{Result: res, Err: err}
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.list) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Take an exam first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection in view.
	visible := max(1, height-2)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(len(s.list), start+visible)

	for i := start; i < end; i++ {
		r := s.list[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		timeout := ""
		if r.TimedOut {
			timeout = "  timed out"
		}
		line := fmt.Sprintf("%s%s  %-34s %-8s %3d/%-3d %5.1f%%%s",
			prefix, r.CompletedAt.Local().Format("Jan 02 15:04"), r.ExamName, r.Mode,
			r.Score, r.Total, r.Percentage, timeout)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
