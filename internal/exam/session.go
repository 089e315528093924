package exam

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/certprep/internal/clock"
	"github.com/abhisek/certprep/internal/errors"
)

// ResultRecorder persists a finished attempt.
type ResultRecorder interface {
	Record(ctx context.Context, result *QuizResult) error
}

// SnapshotSaver persists a resumable snapshot of an unfinished attempt.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
}

// Warning thresholds in seconds of remaining time.
const (
	WarnThirtyMinutes = 30 * 60
	WarnFiveMinutes   = 5 * 60
)

// DefaultWarningThresholds are announced once each as time runs down.
var DefaultWarningThresholds = []int{WarnThirtyMinutes, WarnFiveMinutes}

// Warning is a one-time low-time notification.
type Warning struct {
	Threshold int    `json:"threshold"`
	TimeLeft  int    `json:"time_left"`
	Message   string `json:"message"`
}

// TickEvent reports what a single tick did.
type TickEvent struct {
	TimeLeft  int
	Warnings  []Warning
	Submitted *QuizResult
}

// Config carries the collaborators and options of a session.
type Config struct {
	// ID of the attempt. Generated when empty.
	ID       string
	ExamName string
	Mode     Mode

	// TimeLimit in seconds. Zero means untimed.
	TimeLimit int

	// Recorder receives the result on submit. Optional.
	Recorder ResultRecorder

	// Clock drives Tick for timed sessions. When nil the caller invokes
	// Tick itself.
	Clock clock.Clock

	// Thresholds overrides DefaultWarningThresholds.
	Thresholds []int

	// OnWarning is called for every warning fired by Tick.
	OnWarning func(Warning)

	// OnAutoSubmit is called when the countdown forces submission.
	OnAutoSubmit func(*QuizResult, error)

	// Now overrides time.Now.
	Now func() time.Time
}

// Session drives one exam attempt. It is not safe for concurrent use;
// callers that tick from another goroutine must serialise access, for
// example with clock.Locked.
type Session struct {
	state      State
	cfg        Config
	thresholds []int
	result     *QuizResult
	cancelTick func()
	closed     bool
}

// Start begins a new attempt over questions.
func Start(questions []Question, cfg Config) (*Session, error) {
	if len(questions) == 0 {
		return nil, errors.InvalidInput("no questions to start a session with")
	}
	if cfg.TimeLimit < 0 {
		return nil, errors.InvalidInput("time limit must not be negative, got %d", cfg.TimeLimit)
	}
	for i, q := range questions {
		if len(q.Choices()) == 0 {
			return nil, errors.InvalidInput("question %d has no options", i)
		}
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModePractice
	}

	s := newSession(cfg)
	s.state = State{
		ID:        cfg.ID,
		ExamName:  cfg.ExamName,
		Mode:      cfg.Mode,
		Questions: slices.Clone(questions),
		Answers:   make([]AnswerState, len(questions)),
		Phase:     PhaseInProgress,
		StartedAt: s.now(),
	}
	if cfg.TimeLimit > 0 {
		left := cfg.TimeLimit
		s.state.TimeLimit = cfg.TimeLimit
		s.state.TimeLeft = &left
	}
	s.startTimer()
	return s, nil
}

// Resume rebuilds a session from a snapshot. ID, exam, mode and timing
// come from the snapshot; collaborators come from cfg.
func Resume(snap Snapshot, cfg Config) (*Session, error) {
	st := snap.State.Clone()
	if err := validateState(st); err != nil {
		return nil, err
	}
	cfg.ID = st.ID
	cfg.ExamName = st.ExamName
	cfg.Mode = st.Mode
	cfg.TimeLimit = st.TimeLimit

	s := newSession(cfg)
	s.state = st
	s.startTimer()
	return s, nil
}

func newSession(cfg Config) *Session {
	thresholds := cfg.Thresholds
	if thresholds == nil {
		thresholds = DefaultWarningThresholds
	}
	thresholds = slices.Clone(thresholds)
	slices.Sort(thresholds)
	slices.Reverse(thresholds)
	return &Session{cfg: cfg, thresholds: thresholds}
}

func validateState(st State) error {
	n := len(st.Questions)
	switch {
	case n == 0:
		return errors.InvalidInput("snapshot has no questions")
	case len(st.Answers) != n:
		return errors.InvalidInput("snapshot has %d answers for %d questions", len(st.Answers), n)
	case st.CurrentIndex < 0 || st.CurrentIndex >= n:
		return errors.InvalidInput("snapshot index %d out of range [0, %d]", st.CurrentIndex, n-1)
	case st.Phase == PhaseSubmitted:
		return errors.InvalidInput("snapshot of a submitted session cannot be resumed")
	case st.Phase != PhaseInProgress && st.Phase != PhaseReviewing:
		return errors.InvalidInput("snapshot has unknown phase %q", st.Phase)
	case st.TimeLeft != nil && *st.TimeLeft <= 0:
		return errors.InvalidInput("snapshot has no time left")
	}
	for i, a := range st.Answers {
		if a.UserAnswer != nil && !st.Questions[i].HasChoice(*a.UserAnswer) {
			return errors.InvalidInput("snapshot answer %d is not one of its options", i)
		}
	}
	return nil
}

func (s *Session) now() time.Time {
	if s.cfg.Now != nil {
		return s.cfg.Now()
	}
	return time.Now()
}

func (s *Session) startTimer() {
	if !s.state.Timed() || s.cfg.Clock == nil {
		return
	}
	s.cancelTick = s.cfg.Clock.OnTick(func() {
		_, _ = s.Tick(context.Background())
	})
}

// stopTimer cancels the clock subscription. The cancel func is dropped
// after the first call so it runs exactly once.
func (s *Session) stopTimer() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.Clone()
}

// ID returns the attempt ID.
func (s *Session) ID() string {
	return s.state.ID
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.state.Phase
}

// Result returns the recorded result, or nil before submission.
func (s *Session) Result() *QuizResult {
	return s.result
}

// Closed reports whether the session was abandoned or saved.
func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) checkOpen() error {
	if s.state.Phase == PhaseSubmitted {
		return errors.IllegalTransition("session already submitted")
	}
	if s.closed {
		return errors.IllegalTransition("session is closed")
	}
	return nil
}

func (s *Session) checkEditing() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.state.Phase != PhaseInProgress {
		return errors.IllegalTransition("navigate back to a question before changing it")
	}
	return nil
}

// SelectAnswer answers the current question. The first selection locks it.
func (s *Session) SelectAnswer(option string) error {
	if err := s.checkEditing(); err != nil {
		return err
	}
	i := s.state.CurrentIndex
	q := s.state.Questions[i]
	a := &s.state.Answers[i]

	if !q.HasChoice(option) {
		return errors.InvalidInput("%q is not an option of question %d", option, i)
	}
	if a.Answered() {
		return errors.IllegalTransition("question %d is already answered", i)
	}
	if a.IsStruck(option) {
		return errors.IllegalTransition("option %q is struck through", option)
	}

	a.UserAnswer = &option
	return nil
}

// ToggleFlag flips the flag on the current question.
func (s *Session) ToggleFlag() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	a := &s.state.Answers[s.state.CurrentIndex]
	a.Flagged = !a.Flagged
	return nil
}

// ToggleStrikethrough eliminates or restores an option on the current,
// still unanswered question.
func (s *Session) ToggleStrikethrough(option string) error {
	if err := s.checkEditing(); err != nil {
		return err
	}
	i := s.state.CurrentIndex
	if !s.state.Questions[i].HasChoice(option) {
		return errors.InvalidInput("%q is not an option of question %d", option, i)
	}
	a := &s.state.Answers[i]
	if a.Answered() {
		return errors.IllegalTransition("question %d is already answered", i)
	}
	a.toggleStruck(option)
	return nil
}

// Navigate moves the cursor. Next on the last question enters review,
// Prev on the first is a no-op, and any other move resumes editing.
func (s *Session) Navigate(t Target) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	last := len(s.state.Questions) - 1

	switch t.kind {
	case targetNext:
		if s.state.CurrentIndex >= last {
			s.state.Phase = PhaseReviewing
			return nil
		}
		s.state.CurrentIndex++
	case targetPrev:
		if s.state.CurrentIndex == 0 {
			return nil
		}
		s.state.CurrentIndex--
	case targetIndex:
		if t.index < 0 || t.index > last {
			return errors.InvalidInput("question index %d out of range [0, %d]", t.index, last)
		}
		s.state.CurrentIndex = t.index
	default:
		return errors.InvalidInput("unknown navigation target")
	}
	s.state.Phase = PhaseInProgress
	return nil
}

// EnterReview switches to the review phase and returns the partition of
// answered, unanswered and flagged questions.
func (s *Session) EnterReview() (ReviewSummary, error) {
	if err := s.checkOpen(); err != nil {
		return ReviewSummary{}, err
	}
	s.state.Phase = PhaseReviewing
	return Summarize(s.state.Answers), nil
}

// Review returns the current partition without changing phase.
func (s *Session) Review() ReviewSummary {
	return Summarize(s.state.Answers)
}

// Submit grades the attempt and hands the result to the recorder once.
// On an already submitted session it returns the recorded result along
// with an IllegalTransition error. A recorder failure is returned with
// the result; the session stays submitted.
func (s *Session) Submit(ctx context.Context) (*QuizResult, error) {
	if s.state.Phase == PhaseSubmitted {
		return s.result, errors.IllegalTransition("session already submitted")
	}
	if s.closed {
		return nil, errors.IllegalTransition("session is closed")
	}
	return s.submit(ctx, false)
}

func (s *Session) submit(ctx context.Context, timedOut bool) (*QuizResult, error) {
	s.stopTimer()

	score, graded := Score(s.state.Questions, s.state.Answers)
	total := len(s.state.Questions)
	now := s.now()

	res := &QuizResult{
		ID:          s.state.ID,
		ExamName:    s.state.ExamName,
		Mode:        s.state.Mode,
		Score:       score,
		Total:       total,
		Percentage:  Percentage(score, total),
		Answers:     graded,
		TimedOut:    timedOut,
		TimeLimit:   s.state.TimeLimit,
		StartedAt:   s.state.StartedAt,
		CompletedAt: now,
	}
	if s.state.Timed() {
		res.TimeUsed = s.state.TimeLimit - *s.state.TimeLeft
	} else {
		res.TimeUsed = int(now.Sub(s.state.StartedAt).Seconds())
	}

	s.state.Phase = PhaseSubmitted
	s.result = res

	if s.cfg.Recorder != nil {
		if err := s.cfg.Recorder.Record(ctx, res); err != nil {
			return res, fmt.Errorf("record result: %w", err)
		}
	}
	return res, nil
}

// Tick advances a timed session by one second, firing each armed warning
// threshold once and forcing submission when time runs out. It is a
// no-op on untimed, submitted or closed sessions.
func (s *Session) Tick(ctx context.Context) (TickEvent, error) {
	if !s.state.Timed() || s.state.Phase == PhaseSubmitted || s.closed {
		return TickEvent{TimeLeft: s.timeLeft()}, nil
	}

	left := *s.state.TimeLeft - 1
	if left < 0 {
		left = 0
	}
	*s.state.TimeLeft = left
	ev := TickEvent{TimeLeft: left}

	if left > 0 {
		for _, th := range s.thresholds {
			// Only thresholds below the initial limit are armed.
			if th >= s.state.TimeLimit || left > th || slices.Contains(s.state.FiredWarnings, th) {
				continue
			}
			s.state.FiredWarnings = append(s.state.FiredWarnings, th)
			w := Warning{Threshold: th, TimeLeft: left, Message: warningMessage(th)}
			ev.Warnings = append(ev.Warnings, w)
			if s.cfg.OnWarning != nil {
				s.cfg.OnWarning(w)
			}
		}
		return ev, nil
	}

	res, err := s.submit(ctx, true)
	ev.Submitted = res
	if s.cfg.OnAutoSubmit != nil {
		s.cfg.OnAutoSubmit(res, err)
	}
	return ev, err
}

func (s *Session) timeLeft() int {
	if s.state.TimeLeft == nil {
		return 0
	}
	return *s.state.TimeLeft
}

func warningMessage(threshold int) string {
	if threshold%60 == 0 {
		m := threshold / 60
		if m == 1 {
			return "1 minute remaining"
		}
		return fmt.Sprintf("%d minutes remaining", m)
	}
	return fmt.Sprintf("%d seconds remaining", threshold)
}

// SaveAndExit snapshots the attempt, hands it to saver and closes the
// session. The phase is left unchanged. If saving fails the session
// stays open.
func (s *Session) SaveAndExit(ctx context.Context, saver SnapshotSaver) (Snapshot, error) {
	if err := s.checkOpen(); err != nil {
		return Snapshot{}, err
	}
	snap := s.Snapshot()
	if saver != nil {
		if err := saver.SaveSnapshot(ctx, snap); err != nil {
			return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
		}
	}
	s.Close()
	return snap, nil
}

// Close stops the timer without recording a result. Further mutations
// are rejected. Calling Close more than once is harmless.
func (s *Session) Close() {
	s.stopTimer()
	s.closed = true
}
