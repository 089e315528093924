package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/ui/theme"
)

// OptionList renders the answer options of one question with cursor,
// strikethrough and, once revealed, correctness markers.
type OptionList struct {
	Options []string
	Cursor  int
	Struck  map[string]bool

	// Chosen is the selected option, empty while unanswered.
	Chosen string

	// Correct is shown only when Reveal is set.
	Correct string
	Reveal  bool
}

// Label returns the key label of option i: 1-9.
func Label(i int) string {
	return fmt.Sprintf("%d", i+1)
}

// View renders the list.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && o.Chosen == "" {
			prefix = "▸ "
		}
		marker := " "
		if opt == o.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, Label(i), opt)

		var style lipgloss.Style
		switch {
		case o.Reveal && opt == o.Correct:
			style = theme.Correct
		case o.Reveal && opt == o.Chosen:
			style = theme.Incorrect
		case o.Struck[opt]:
			style = theme.Struck
		case opt == o.Chosen:
			style = theme.Selected
		case i == o.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
