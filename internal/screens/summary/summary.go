package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/ui/layout"
	"github.com/abhisek/certprep/internal/ui/theme"
)

// passMark is the percentage shown as a pass. It only colours the score.
const passMark = 72.0

// linesPerAnswer is the height of one entry in the answer list.
const linesPerAnswer = 2

// SummaryScreen displays a graded attempt.
type SummaryScreen struct {
	result *exam.QuizResult
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result *exam.QuizResult) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.result == nil {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.result.Answers)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), res.ExamName)
	center(lipgloss.NewStyle().Foreground(theme.TextDim), fmt.Sprintf("%s mode  ·  %s", res.Mode, res.CompletedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")

	scoreStyle := theme.Correct
	if res.Percentage < passMark {
		scoreStyle = theme.Incorrect
	}
	center(scoreStyle, fmt.Sprintf("%d / %d   %.1f%%", res.Score, res.Total, res.Percentage))

	used := "time used " + layout.FormatClock(res.TimeUsed)
	if res.TimeLimit > 0 {
		used += " of " + layout.FormatClock(res.TimeLimit)
	}
	center(lipgloss.NewStyle().Foreground(theme.TextDim), used)
	if res.TimedOut {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Warning.Render("Time ran out: submitted automatically")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	header := strings.Count(b.String(), "\n")
	visible := max(1, (height-header)/linesPerAnswer)
	end := min(len(res.Answers), s.offset+visible)
	for _, a := range res.Answers[s.offset:end] {
		b.WriteString(renderAnswer(a, width))
	}
	return b.String()
}

func renderAnswer(a exam.UserAnswer, width int) string {
	mark := theme.Correct.Render("✓")
	if !a.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}
	flag := " "
	if a.Flagged {
		flag = theme.Flagged.Render("⚑")
	}
	prompt := a.Prompt
	if n := width - 14; n > 4 && len([]rune(prompt)) > n {
		prompt = string([]rune(prompt)[:n-1]) + "…"
	}
	line := fmt.Sprintf("  %s %s %3d. %s", mark, flag, a.Index+1, theme.Body.Render(prompt))

	detail := "your answer: " + a.UserAnswer
	if !a.IsCorrect {
		detail += "   correct: " + a.CorrectAnswer
	}
	if a.Category != "" {
		detail += "   [" + a.Category + "]"
	}
	return line + "\n" + "         " + theme.Hint.Render(detail) + "\n"
}
