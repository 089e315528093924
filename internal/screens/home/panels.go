package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/screens/welcome"
	"github.com/abhisek/certprep/internal/ui/layout"
	"github.com/abhisek/certprep/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the splash banner, or a single line when space
// is short.
func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w))
}

// renderSetupBar shows the exam, mode and length that START EXAM uses.
func renderSetupBar(e catalog.Exam, mode exam.Mode, count, timeLimit, cw int) string {
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	timing := "untimed"
	if timeLimit > 0 {
		timing = layout.FormatClock(timeLimit)
	}
	lines := []string{
		accent.Render("◂ "+e.Name+" ▸") + dim.Render("  "+e.Body),
		fmt.Sprintf("%s  %s  %s",
			theme.Body.Render(string(mode)+" mode"),
			theme.Body.Render(fmt.Sprintf("%d questions", count)),
			dim.Render(timing)),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderResumeNote describes the saved session RESUME continues.
func renderResumeNote(snap *exam.Snapshot, cw int) string {
	st := snap.State
	answered := 0
	for _, a := range st.Answers {
		if a.Answered() {
			answered++
		}
	}
	text := fmt.Sprintf("Saved: %s %s, %d/%d answered", st.ExamName, st.Mode, answered, len(st.Questions))
	if st.TimeLeft != nil {
		text += ", " + layout.FormatClock(*st.TimeLeft) + " left"
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderSourceNote renders a one-line note on where questions come from.
func renderSourceNote(note string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(note)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double-border frame, centred in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
