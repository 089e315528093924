package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/screens/home"
	sessionscreen "github.com/abhisek/certprep/internal/screens/session"
	"github.com/abhisek/certprep/internal/screens/welcome"
	"github.com/abhisek/certprep/internal/store"
	"github.com/abhisek/certprep/internal/ui/layout"
)

// PlayRequest starts an attempt straight away, skipping the menus.
type PlayRequest struct {
	Exam  catalog.Exam
	Mode  exam.Mode
	Count int
}

// Options holds the collaborators the screens need.
type Options struct {
	Source    questions.Source
	Results   store.ResultRepo
	Snapshots store.SnapshotRepo

	// SourceNote is shown on the home screen, e.g. which question source
	// is in use.
	SourceNote string

	// Play, when set, opens an exam on top of the home screen.
	Play *PlayRequest

	// SkipSplash goes straight to the home screen.
	SkipSplash bool
}

func (o Options) sessionOptions() sessionscreen.Options {
	return sessionscreen.Options{
		Source:    o.Source,
		Results:   o.Results,
		Snapshots: o.Snapshots,
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	play   screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel. The splash hands over to the home
// screen unless a play request or SkipSplash asks otherwise.
func newAppModel(opts Options) AppModel {
	sopts := opts.sessionOptions()
	newHome := func() screen.Screen { return home.New(sopts, opts.SourceNote) }

	var m AppModel
	switch {
	case opts.Play != nil:
		m.router = router.New(newHome())
		m.play = sessionscreen.New(sopts, opts.Play.Exam, opts.Play.Mode, opts.Play.Count)
	case opts.SkipSplash:
		m.router = router.New(newHome())
	default:
		m.router = router.New(welcome.New(newHome))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.play != nil {
		return tea.Batch(m.router.Active().Init(), m.router.Push(m.play))
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	if hints == nil {
		if m.router.Depth() > 1 {
			hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		} else {
			hints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
			}
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
