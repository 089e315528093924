package session

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/router"
	"github.com/abhisek/certprep/internal/screen"
	"github.com/abhisek/certprep/internal/screens/summary"
	"github.com/abhisek/certprep/internal/store"
	"github.com/abhisek/certprep/internal/ui/layout"
)

// Options are the collaborators shared by the TUI screens.
type Options struct {
	Source    questions.Source
	Results   store.ResultRepo
	Snapshots store.SnapshotRepo
}

// SessionScreen runs one exam attempt. The countdown is driven by
// tea.Tick messages that call Session.Tick, so the session is only ever
// touched from Update.
type SessionScreen struct {
	opts     Options
	req      questions.Request
	examDef  catalog.Exam
	resume   *exam.Snapshot
	session  *exam.Session
	cursor   int
	striking bool

	// reviewCursor selects a question on the review screen.
	reviewCursor int

	warning     string
	notice      string
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscCapturer = (*SessionScreen)(nil)

// New creates a screen that generates count questions for e and starts
// a fresh attempt.
func New(opts Options, e catalog.Exam, mode exam.Mode, count int) *SessionScreen {
	return &SessionScreen{
		opts:    opts,
		examDef: e,
		req: questions.Request{
			Exam:  e.ID,
			Count: count,
			Mode:  mode,
		},
	}
}

// NewResumed creates a screen that continues a saved attempt.
func NewResumed(opts Options, snap exam.Snapshot) *SessionScreen {
	return &SessionScreen{opts: opts, resume: &snap}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.resume != nil {
		return s.startResumed()
	}
	src, results, req, name := s.opts.Source, s.opts.Results, s.req, s.examDef.Name
	return func() tea.Msg {
		ctx := context.Background()
		if results != nil {
			prompts, err := results.RecentPrompts(ctx, name, questions.AvoidDepth)
			if err != nil {
				log.Warn().Err(err).Str("exam", name).Msg("load recent prompts")
			}
			req.Avoid = prompts
		}
		qs, err := src.Generate(ctx, req)
		return questionsReadyMsg{Questions: qs, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	switch {
	case s.session != nil:
		st := s.session.State()
		return st.ExamName + " · " + string(st.Mode)
	case s.examDef.Name != "":
		return s.examDef.Name
	default:
		return "Exam"
	}
}

// Status shows the countdown of a timed attempt.
func (s *SessionScreen) Status() string {
	if s.session == nil {
		return ""
	}
	st := s.session.State()
	if !st.Timed() {
		return "untimed"
	}
	return "⏱ " + layout.FormatClock(*st.TimeLeft)
}

// CapturesEsc keeps the app from popping a running attempt.
func (s *SessionScreen) CapturesEsc() bool {
	return s.session != nil && s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "S", Description: "Save & exit"},
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case s.session.Phase() == exam.PhaseReviewing:
		return append([]layout.KeyHint{{Key: "Enter", Description: "Go to question"}},
			hints(keys.Prev, keys.Submit, keys.Save, keys.Quit)...)
	default:
		return hints(keys.Choose, keys.Strike, keys.Flag, keys.Prev, keys.Review, keys.Submit, keys.Save)
	}
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.session == nil:
		return renderLoading(width)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.session.Phase() == exam.PhaseReviewing:
		return s.renderReview(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestions(msg)
	case timerTickMsg:
		return s.handleTick()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) config() exam.Config {
	cfg := exam.Config{
		ExamName:  s.examDef.Name,
		Mode:      s.req.Mode,
		TimeLimit: s.examDef.TimeLimitSecs(s.req.Mode, s.req.Count),
	}
	if s.opts.Results != nil {
		cfg.Recorder = s.opts.Results
	}
	return cfg
}

func (s *SessionScreen) handleQuestions(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		log.Error().Err(msg.Err).Str("exam", s.req.Exam).Msg("generate questions")
		s.errMsg = errors.Convert(msg.Err).Message
		return s, nil
	}
	sess, err := exam.Start(msg.Questions, s.config())
	if err != nil {
		s.errMsg = errors.Convert(err).Message
		return s, nil
	}
	s.session = sess
	log.Info().Str("session", sess.ID()).Str("exam", s.req.Exam).Msg("session started")
	return s, s.tickIfTimed()
}

func (s *SessionScreen) startResumed() tea.Cmd {
	cfg := exam.Config{}
	if s.opts.Results != nil {
		cfg.Recorder = s.opts.Results
	}
	sess, err := exam.Resume(*s.resume, cfg)
	if err != nil {
		s.errMsg = errors.Convert(err).Message
		return nil
	}
	s.session = sess
	s.req.Mode = sess.State().Mode

	// A resumed snapshot is consumed; saving again writes a new one.
	if s.opts.Snapshots != nil {
		if err := s.opts.Snapshots.Delete(context.Background(), sess.ID()); err != nil {
			log.Warn().Err(err).Str("session", sess.ID()).Msg("delete resumed snapshot")
		}
	}
	log.Info().Str("session", sess.ID()).Msg("session resumed")
	return s.tickIfTimed()
}

func (s *SessionScreen) tickIfTimed() tea.Cmd {
	if s.session == nil || !s.session.State().Timed() {
		return nil
	}
	return tickCmd()
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Closed() || s.session.Phase() == exam.PhaseSubmitted {
		return s, nil
	}
	ev, err := s.session.Tick(context.Background())
	if n := len(ev.Warnings); n > 0 {
		s.warning = ev.Warnings[n-1].Message
	}
	if ev.Submitted != nil {
		return s, s.finish(ev.Submitted, err)
	}
	return s, tickCmd()
}

// finish hands over to the summary. A recorder failure still shows the
// result; it is only logged.
func (s *SessionScreen) finish(res *exam.QuizResult, err error) tea.Cmd {
	if err != nil {
		log.Error().Err(err).Str("session", res.ID).Msg("record result")
	}
	log.Info().Str("session", res.ID).Int("score", res.Score).Int("total", res.Total).
		Bool("timed_out", res.TimedOut).Msg("session submitted")
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(res)}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.session == nil {
		return s, nil
	}
	k := msg.String()

	if s.confirmQuit {
		switch k {
		case "s", "S":
			s.confirmQuit = false
			return s.save()
		case "y", "Y":
			s.session.Close()
			log.Info().Str("session", s.session.ID()).Msg("session abandoned")
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	s.notice = ""

	switch {
	case key.Matches(msg, keys.Quit):
		s.confirmQuit = true
		return s, nil
	case key.Matches(msg, keys.Save):
		return s.save()
	case key.Matches(msg, keys.Submit):
		res, err := s.session.Submit(context.Background())
		if res == nil {
			s.report(err)
			return s, nil
		}
		return s, s.finish(res, err)
	}

	if s.session.Phase() == exam.PhaseReviewing {
		return s.handleReviewKey(msg)
	}

	opts := s.session.State().Current().Choices()
	if i, ok := optionIndex(k); ok {
		if i >= len(opts) {
			s.striking = false
			return s, nil
		}
		if s.striking {
			s.striking = false
			s.report(s.session.ToggleStrikethrough(opts[i]))
			return s, nil
		}
		s.cursor = i
		s.report(s.session.SelectAnswer(opts[i]))
		return s, nil
	}
	s.striking = false

	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < len(opts)-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Choose):
		s.report(s.session.SelectAnswer(opts[s.cursor]))
	case key.Matches(msg, keys.Strike):
		s.striking = true
	case key.Matches(msg, keys.Flag):
		s.report(s.session.ToggleFlag())
	case key.Matches(msg, keys.Prev):
		s.move(exam.Prev)
	case key.Matches(msg, keys.Next):
		s.move(exam.Next)
	case key.Matches(msg, keys.Review):
		_, err := s.session.EnterReview()
		s.report(err)
		s.reviewCursor = s.session.State().CurrentIndex
	}
	return s, nil
}

func (s *SessionScreen) handleReviewKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	n := len(s.session.State().Questions)
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Prev):
		if s.reviewCursor > 0 {
			s.reviewCursor--
		}
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Next):
		if s.reviewCursor < n-1 {
			s.reviewCursor++
		}
	case key.Matches(msg, keys.Choose):
		s.move(exam.Index(s.reviewCursor))
	}
	return s, nil
}

func (s *SessionScreen) move(t exam.Target) {
	before := s.session.State().CurrentIndex
	s.report(s.session.Navigate(t))
	if s.session.State().CurrentIndex != before {
		s.cursor = 0
	}
	if s.session.Phase() == exam.PhaseReviewing {
		s.reviewCursor = s.session.State().CurrentIndex
	}
}

func (s *SessionScreen) save() (screen.Screen, tea.Cmd) {
	if s.opts.Snapshots == nil {
		s.notice = "saving is not available"
		return s, nil
	}
	snap, err := s.session.SaveAndExit(context.Background(), s.opts.Snapshots)
	if err != nil {
		log.Error().Err(err).Str("session", s.session.ID()).Msg("save session")
		s.notice = "could not save: " + err.Error()
		return s, nil
	}
	log.Info().Str("session", snap.State.ID).Msg("session saved")
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

// report surfaces an operation error as a one-line notice.
func (s *SessionScreen) report(err error) {
	if err != nil {
		s.notice = errors.Convert(err).Message
	}
}

// optionIndex maps 1-9 and a-d onto option indices.
func optionIndex(k string) (int, bool) {
	if len(k) != 1 {
		return 0, false
	}
	c := k[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
