package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/screens/dashboard"
	"github.com/abhisek/certprep/internal/screens/history"
	sessionscreen "github.com/abhisek/certprep/internal/screens/session"
	"github.com/abhisek/certprep/internal/ui/components"
	"github.com/abhisek/certprep/internal/ui/layout"
)

const (
	defaultCount = 10
	countStep    = 5
)

// Menu positions.
const (
	itemStart = iota
	itemResume
	itemHistory
	itemDashboard
	itemQuit
)

var menuLabels = []string{"START EXAM", "RESUME", "HISTORY", "DASHBOARD", "QUIT"}

type latestLoadedMsg struct {
	Snapshot *exam.Snapshot
}

// HomeScreen picks an exam, mode and length, and links to the other
// screens.
type HomeScreen struct {
	opts       sessionscreen.Options
	sourceNote string

	exams   []catalog.Exam
	examIdx int
	mode    exam.Mode
	count   int

	latest *exam.Snapshot
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. sourceNote describes where questions
// come from and is shown under the title.
func New(opts sessionscreen.Options, sourceNote string) *HomeScreen {
	h := &HomeScreen{
		opts:       opts,
		sourceNote: sourceNote,
		exams:      catalog.All(),
		mode:       exam.ModeExam,
		count:      defaultCount,
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	noResults := h.opts.Results == nil
	return []components.MenuItem{
		itemStart: {Label: menuLabels[itemStart], Disabled: h.opts.Source == nil, Action: func() tea.Cmd {
			return push(sessionscreen.New(h.opts, h.exams[h.examIdx], h.mode, h.count))
		}},
		itemResume: {Label: menuLabels[itemResume], Disabled: h.latest == nil, Action: func() tea.Cmd {
			return push(sessionscreen.NewResumed(h.opts, *h.latest))
		}},
		itemHistory: {Label: menuLabels[itemHistory], Disabled: noResults, Action: func() tea.Cmd {
			return push(history.New(h.opts.Results))
		}},
		itemDashboard: {Label: menuLabels[itemDashboard], Disabled: noResults, Action: func() tea.Cmd {
			return push(dashboard.New(h.opts.Results))
		}},
		itemQuit: {Label: menuLabels[itemQuit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// Init looks up the most recent saved session. It runs again whenever
// the home screen is revealed, so a fresh save shows up immediately.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.opts.Snapshots
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := repo.Latest(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("load latest snapshot")
		}
		return latestLoadedMsg{Snapshot: snap}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Exam"},
		{Key: "M", Description: "Mode"},
		{Key: "+/-", Description: "Questions"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case latestLoadedMsg:
		h.latest = msg.Snapshot
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			h.examIdx = (h.examIdx + len(h.exams) - 1) % len(h.exams)
			h.clampCount()
			return h, nil
		case "right", "l":
			h.examIdx = (h.examIdx + 1) % len(h.exams)
			h.clampCount()
			return h, nil
		case "m":
			if h.mode == exam.ModeExam {
				h.mode = exam.ModePractice
			} else {
				h.mode = exam.ModeExam
			}
			return h, nil
		case "+", "=":
			h.count += countStep
			h.clampCount()
			return h, nil
		case "-":
			h.count -= countStep
			h.clampCount()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) clampCount() {
	h.count = max(1, min(h.count, h.exams[h.examIdx].QuestionCount))
}

// timeLimit is the countdown the current selection would get.
func (h *HomeScreen) timeLimit() int {
	return h.exams[h.examIdx].TimeLimitSecs(h.mode, h.count)
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)

	disabled := make(map[int]bool, len(h.menu.Items))
	for i, it := range h.menu.Items {
		disabled[i] = it.Disabled
	}

	sections := []string{renderTitle(cw, compact)}
	if h.sourceNote != "" {
		sections = append(sections, renderSourceNote(h.sourceNote, cw))
	}
	sections = append(sections, renderSetupBar(h.exams[h.examIdx], h.mode, h.count, h.timeLimit(), cw))
	if h.latest != nil {
		sections = append(sections, renderResumeNote(h.latest, cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(menuLabels, h.menu.Selected, cw, disabled))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
