package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/ui/components"
	"github.com/abhisek/certprep/internal/ui/theme"
)

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Preparing questions...")
}

func renderError(width int, msg string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Could not start the exam"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Text).Render(msg))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Render("Press any key to go back"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Leave this exam?") + "\n\n" +
			theme.Hint.Render("S  save and resume later") + "\n" +
			theme.Hint.Render("Y  abandon without a result") + "\n" +
			theme.Hint.Render("N  keep going"),
	)
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// renderQuestion renders the question under the cursor.
func (s *SessionScreen) renderQuestion(width int) string {
	st := s.session.State()
	q := st.Current()
	ans := st.CurrentAnswer()

	var b strings.Builder

	info := fmt.Sprintf("  Question %d of %d", st.CurrentIndex+1, len(st.Questions))
	if q.Category != "" {
		info += "  ·  " + q.Category
	}
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info)
	if ans.Flagged {
		line += "  " + theme.Flagged.Render("⚑ flagged")
	}
	b.WriteString(line)
	b.WriteString("\n")

	answered := 0
	for _, a := range st.Answers {
		if a.Answered() {
			answered++
		}
	}
	bar := components.NewProgressBar("", float64(answered)/float64(len(st.Questions)), false, width-4)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")

	if s.warning != "" {
		b.WriteString("\n  " + theme.Warning.Render("⏱ "+s.warning) + "\n")
	}
	b.WriteString("\n")

	prompt := lipgloss.NewStyle().
		Width(width-4).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(prompt))
	b.WriteString("\n\n")

	list := components.OptionList{
		Options: q.Choices(),
		Cursor:  s.cursor,
		Struck:  make(map[string]bool, len(ans.Struck)),
		Correct: q.Answer,
	}
	for _, o := range ans.Struck {
		list.Struck[o] = true
	}
	if ans.UserAnswer != nil {
		list.Chosen = *ans.UserAnswer
	}
	reveal := st.Mode == exam.ModePractice && ans.Answered()
	list.Reveal = reveal
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(list.View()))

	if reveal {
		b.WriteString("\n")
		if q.IsCorrect(list.Chosen) {
			b.WriteString("  " + theme.Correct.Render("Correct"))
		} else {
			b.WriteString("  " + theme.Incorrect.Render("Incorrect") +
				theme.Hint.Render("  answer: "+q.Answer))
		}
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(lipgloss.NewStyle().Width(width-4).PaddingLeft(2).Foreground(theme.TextDim).Render(q.Explanation))
			b.WriteString("\n")
		}
		if q.Reference != "" {
			b.WriteString("  " + theme.Hint.Render("Ref: "+q.Reference) + "\n")
		}
	}

	if s.striking {
		b.WriteString("\n  " + theme.Hint.Render("Strike which option? (1-9)"))
	}
	if s.notice != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice))
	}
	return b.String()
}

// renderReview lists every question with its answered and flagged state.
func (s *SessionScreen) renderReview(width int) string {
	st := s.session.State()
	rs := s.session.Review()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Review"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"%d answered  ·  %d unanswered  ·  %d flagged",
		len(rs.Answered), len(rs.Unanswered), len(rs.Flagged))))
	b.WriteString("\n\n")

	for i, q := range st.Questions {
		a := st.Answers[i]
		prefix := "    "
		if i == s.reviewCursor {
			prefix = "  ▸ "
		}
		status := theme.Hint.Render("unanswered")
		if a.Answered() {
			status = lipgloss.NewStyle().Foreground(theme.Success).Render("answered")
		}
		flag := " "
		if a.Flagged {
			flag = theme.Flagged.Render("⚑")
		}
		prompt := truncate(q.Prompt, width-30)
		line := fmt.Sprintf("%s%s %3d. %s  ", prefix, flag, i+1, prompt)
		if i == s.reviewCursor {
			line = theme.Selected.Render(line)
		} else {
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + status + "\n")
	}

	if len(rs.Unanswered) > 0 {
		b.WriteString("\n  " + theme.Warning.Render(fmt.Sprintf("%d unanswered questions will score zero", len(rs.Unanswered))))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
