// Package dashboard shows readiness, score trends and weak categories.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/stats"
	"github.com/abhisek/certprep/internal/store"
	"github.com/abhisek/certprep/internal/ui/components"
	"github.com/abhisek/certprep/internal/ui/layout"
	"github.com/abhisek/certprep/internal/ui/theme"
)

// maxWeaknesses caps the categories listed.
const maxWeaknesses = 8

type dashboardLoadedMsg struct {
	Exam      string
	Dashboard stats.Dashboard
	Err       error
}

// DashboardScreen renders stats.Dashboard for one exam or all of them.
type DashboardScreen struct {
	results store.ResultRepo

	// filters[0] is every exam; the rest are catalog names.
	filters []string
	filter  int

	dash   stats.Dashboard
	loaded bool
	errMsg string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(results store.ResultRepo) *DashboardScreen {
	filters := []string{""}
	for _, e := range catalog.All() {
		filters = append(filters, e.Name)
	}
	return &DashboardScreen{results: results, filters: filters}
}

func (s *DashboardScreen) Init() tea.Cmd {
	repo, name := s.results, s.filters[s.filter]
	return func() tea.Msg {
		ctx := context.Background()
		results, err := repo.List(ctx, store.QueryOpts{Exam: name})
		if err != nil {
			return dashboardLoadedMsg{Exam: name, Err: err}
		}
		cats, err := repo.CategoryStats(ctx, name)
		if err != nil {
			return dashboardLoadedMsg{Exam: name, Err: err}
		}
		return dashboardLoadedMsg{Exam: name, Dashboard: stats.Build(results, cats, name)}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next exam"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		// Ignore a load for a filter the user has already moved past.
		if msg.Exam != s.filters[s.filter] {
			return s, nil
		}
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.dash = msg.Dashboard
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.filter = (s.filter + 1) % len(s.filters)
			s.loaded = false
			return s, s.Init()
		case "shift+tab":
			s.filter = (s.filter + len(s.filters) - 1) % len(s.filters)
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	var b strings.Builder

	label := "All exams"
	if f := s.filters[s.filter]; f != "" {
		label = f
	}
	b.WriteString(theme.Title.Width(width).Render(label))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("filter %d of %d", s.filter+1, len(s.filters))))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("Error: " + s.errMsg))
		return b.String()
	case !s.loaded:
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading..."))
		return b.String()
	case s.dash.Summary.Attempts == 0:
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No attempts yet."))
		return b.String()
	}

	barWidth := min(width-8, 70)
	sum := s.dash.Summary

	readiness := components.NewProgressBar("Readiness", s.dash.Readiness/100, true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, readiness.View()))
	b.WriteString("\n\n")

	line := fmt.Sprintf("Attempts %d   Average %.1f%%   Best %.1f%%   Latest %.1f%%",
		sum.Attempts, sum.Average, sum.Best, sum.Latest)
	if sum.TimedOut > 0 {
		line += fmt.Sprintf("   Timed out %d", sum.TimedOut)
	}
	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).Render(line))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Weakest categories")))
	b.WriteString("\n")
	if len(s.dash.Weaknesses) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("answer at least %d questions in a category to rank it", stats.DefaultMinAttempts))))
		b.WriteString("\n")
		return b.String()
	}
	for _, c := range s.dash.Weaknesses[:min(len(s.dash.Weaknesses), maxWeaknesses)] {
		name := fmt.Sprintf("%-24s %3d/%-3d", truncate(c.Category, 24), c.Correct, c.Answered)
		bar := components.NewProgressBar(name, c.Accuracy()/100, true, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
