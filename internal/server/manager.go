package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/clock"
	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/store"
)

// DefaultQuestionCount is used when a start request leaves count empty.
const DefaultQuestionCount = 10

// SnapshotStore keeps resumable snapshots. Both the redis cache and the
// SQLite snapshot repo satisfy it.
type SnapshotStore interface {
	exam.SnapshotSaver
	Load(ctx context.Context, id string) (*exam.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// StartRequest asks for a new session.
type StartRequest struct {
	Exam     string `json:"exam" binding:"required"`
	Mode     string `json:"mode"`
	Count    int    `json:"count" binding:"gte=0"`
	Category string `json:"category"`
}

// Manager owns the live sessions of the API.
//
// Lock order is entry.mu before Manager.mu. A session's clock ticks under
// its entry.mu, so callbacks fired from Tick may take Manager.mu but code
// holding Manager.mu must never wait on an entry.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	resuming map[string]struct{}

	source   questions.Source
	recorder exam.ResultRecorder
	results  store.ResultRepo
	stores   []SnapshotStore
	newClock func() clock.Clock
	metrics  *metrics
	now      func() time.Time
}

type entry struct {
	mu       sync.Mutex
	session  *exam.Session
	warnings []exam.Warning
	touched  time.Time
}

func newManager(deps Deps, m *metrics) *Manager {
	mgr := &Manager{
		sessions: make(map[string]*entry),
		resuming: make(map[string]struct{}),
		source:   deps.Source,
		recorder: deps.Results,
		results:  deps.Results,
		newClock: deps.NewClock,
		metrics:  m,
		now:      time.Now,
	}
	if deps.Cache != nil {
		mgr.stores = append(mgr.stores, deps.Cache)
	}
	if deps.Snapshots != nil {
		mgr.stores = append(mgr.stores, deps.Snapshots)
	}
	if mgr.newClock == nil {
		mgr.newClock = func() clock.Clock { return clock.NewTicker() }
	}
	return mgr
}

// Len returns the number of sessions held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start generates questions and opens a session over them.
func (m *Manager) Start(ctx context.Context, req StartRequest) (SessionView, error) {
	e, ok := catalog.Lookup(req.Exam)
	if !ok {
		return SessionView{}, errors.NotFound("unknown exam %q", req.Exam)
	}
	mode, ok := catalog.ParseMode(req.Mode)
	if !ok {
		return SessionView{}, errors.InvalidInput("unknown mode %q", req.Mode)
	}
	count := req.Count
	if count == 0 {
		count = DefaultQuestionCount
	}

	qs, err := m.source.Generate(ctx, questions.Request{
		Exam:     e.ID,
		Count:    count,
		Mode:     mode,
		Category: req.Category,
		Avoid:    m.recentPrompts(ctx, e.Name),
	})
	if err != nil {
		return SessionView{}, err
	}

	// The entry is locked before the session exists so that no tick can
	// reach it until it is stored.
	ent := &entry{}
	ent.mu.Lock()
	defer ent.mu.Unlock()

	s, err := exam.Start(qs, m.sessionConfig(ent, exam.Config{
		ExamName:  e.Name,
		Mode:      mode,
		TimeLimit: e.TimeLimitSecs(mode, count),
	}))
	if err != nil {
		return SessionView{}, err
	}
	ent.session = s
	ent.touched = m.now()
	m.put(s.ID(), ent)

	m.metrics.started.WithLabelValues(string(mode)).Inc()
	m.metrics.active.Inc()
	log.Info().Str("session", s.ID()).Str("exam", e.ID).
		Str("mode", string(mode)).Int("questions", len(qs)).
		Msg("session started")

	return ent.view(), nil
}

// recentPrompts lists questions from earlier attempts so a new batch
// does not repeat them. History is best effort.
func (m *Manager) recentPrompts(ctx context.Context, examName string) []string {
	if m.results == nil {
		return nil
	}
	prompts, err := m.results.RecentPrompts(ctx, examName, questions.AvoidDepth)
	if err != nil {
		log.Warn().Err(err).Str("exam", examName).Msg("load recent prompts")
		return nil
	}
	return prompts
}

func (m *Manager) sessionConfig(ent *entry, cfg exam.Config) exam.Config {
	cfg.Recorder = m.recorder
	cfg.Clock = clock.Locked(m.newClock(), &ent.mu)
	cfg.OnWarning = func(w exam.Warning) {
		ent.warnings = append(ent.warnings, w)
	}
	cfg.OnAutoSubmit = func(res *exam.QuizResult, err error) {
		m.metrics.autoSubmitted.Inc()
		m.metrics.active.Dec()
		m.dropSnapshots(context.Background(), res.ID)
		if err != nil {
			log.Error().Err(err).Str("session", res.ID).Msg("auto-submit: record result")
			return
		}
		log.Info().Str("session", res.ID).Int("score", res.Score).
			Int("total", res.Total).Msg("session auto-submitted")
	}
	return cfg
}

func (m *Manager) put(id string, ent *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = ent
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) lookup(id string) (*entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ent, ok := m.sessions[id]
	return ent, ok
}

// with runs fn on the session under its lock and returns the resulting
// view. The view is returned even when fn fails.
func (m *Manager) with(id string, fn func(s *exam.Session) error) (SessionView, error) {
	ent, ok := m.lookup(id)
	if !ok {
		return SessionView{}, errors.NotFound("no live session %q", id)
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()

	err := fn(ent.session)
	ent.touched = m.now()
	return ent.view(), err
}

// view drains pending warnings. Callers hold ent.mu.
func (ent *entry) view() SessionView {
	v := newSessionView(ent.session, ent.warnings)
	ent.warnings = nil
	return v
}

// Get returns the current view of a live session.
func (m *Manager) Get(id string) (SessionView, error) {
	return m.with(id, func(*exam.Session) error { return nil })
}

// Answer selects option on the current question.
func (m *Manager) Answer(id, option string) (SessionView, error) {
	return m.with(id, func(s *exam.Session) error { return s.SelectAnswer(option) })
}

// Flag toggles the flag on the current question.
func (m *Manager) Flag(id string) (SessionView, error) {
	return m.with(id, (*exam.Session).ToggleFlag)
}

// Strike toggles the strikethrough of option on the current question.
func (m *Manager) Strike(id, option string) (SessionView, error) {
	return m.with(id, func(s *exam.Session) error { return s.ToggleStrikethrough(option) })
}

// Navigate moves the cursor of a session.
func (m *Manager) Navigate(id string, t exam.Target) (SessionView, error) {
	return m.with(id, func(s *exam.Session) error { return s.Navigate(t) })
}

// Review switches a session to its review phase.
func (m *Manager) Review(id string) (SessionView, error) {
	return m.with(id, func(s *exam.Session) error {
		_, err := s.EnterReview()
		return err
	})
}

// Submit grades a session. The submitted session stays in memory so its
// result can still be viewed until it is swept.
func (m *Manager) Submit(ctx context.Context, id string) (SessionView, error) {
	return m.with(id, func(s *exam.Session) error {
		if s.Phase() == exam.PhaseSubmitted || s.Closed() {
			_, err := s.Submit(ctx)
			return err
		}
		res, err := s.Submit(ctx)
		if res != nil {
			m.dropSnapshots(ctx, id)
			m.metrics.submitted.Inc()
			m.metrics.active.Dec()
			log.Info().Str("session", id).Int("score", res.Score).
				Int("total", res.Total).Msg("session submitted")
		}
		return err
	})
}

// Save snapshots a session to every snapshot store and drops it from
// memory. On failure the session stays live.
func (m *Manager) Save(ctx context.Context, id string) (SavedView, error) {
	ent, ok := m.lookup(id)
	if !ok {
		return SavedView{}, errors.NotFound("no live session %q", id)
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()

	snap, err := m.save(ctx, ent)
	if err != nil {
		return SavedView{}, err
	}
	return SavedView{ID: id, SavedAt: snap.SavedAt}, nil
}

// save is called with ent.mu held.
func (m *Manager) save(ctx context.Context, ent *entry) (exam.Snapshot, error) {
	snap, err := ent.session.SaveAndExit(ctx, multiSaver(m.stores))
	if err != nil {
		return exam.Snapshot{}, err
	}
	m.remove(snap.State.ID)
	m.metrics.saved.Inc()
	m.metrics.active.Dec()
	log.Info().Str("session", snap.State.ID).Msg("session saved")
	return snap, nil
}

// Resume reopens a saved session, preferring the cache over SQLite. The
// snapshot is removed from every store once the session is live again.
func (m *Manager) Resume(ctx context.Context, id string) (SessionView, error) {
	if err := m.reserve(id); err != nil {
		return SessionView{}, err
	}
	defer m.release(id)

	snap, err := m.loadSnapshot(ctx, id)
	if err != nil {
		return SessionView{}, err
	}

	ent := &entry{}
	ent.mu.Lock()
	defer ent.mu.Unlock()

	s, err := exam.Resume(*snap, m.sessionConfig(ent, exam.Config{}))
	if err != nil {
		return SessionView{}, err
	}
	ent.session = s
	ent.touched = m.now()
	m.put(id, ent)
	m.dropSnapshots(ctx, id)

	m.metrics.resumed.Inc()
	m.metrics.active.Inc()
	log.Info().Str("session", id).Msg("session resumed")
	return ent.view(), nil
}

// reserve claims id for a resume so that concurrent resumes of the same
// snapshot cannot both go live.
func (m *Manager) reserve(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return errors.IllegalTransition("session %q is already running", id)
	}
	if _, ok := m.resuming[id]; ok {
		return errors.IllegalTransition("session %q is already being resumed", id)
	}
	m.resuming[id] = struct{}{}
	return nil
}

func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resuming, id)
}

// dropSnapshots removes the saved copies of a session from every store.
func (m *Manager) dropSnapshots(ctx context.Context, id string) {
	for _, st := range m.stores {
		if err := st.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("session", id).Msg("delete snapshot")
		}
	}
}

func (m *Manager) loadSnapshot(ctx context.Context, id string) (*exam.Snapshot, error) {
	var errs []error
	for _, st := range m.stores {
		snap, err := st.Load(ctx, id)
		if err != nil {
			// A broken store should not hide a good copy in the next one.
			log.Warn().Err(err).Str("session", id).Msg("resume: load snapshot")
			errs = append(errs, err)
			continue
		}
		if snap != nil {
			return snap, nil
		}
	}
	if len(errs) > 0 {
		return nil, errors.Internal(stderrors.Join(errs...))
	}
	return nil, errors.NotFound("no saved session %q", id)
}

// Discard abandons a live session without recording a result.
func (m *Manager) Discard(id string) error {
	ent, ok := m.lookup(id)
	if !ok {
		return errors.NotFound("no live session %q", id)
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()

	open := ent.session.Phase() != exam.PhaseSubmitted && !ent.session.Closed()
	ent.session.Close()
	m.remove(id)
	if open {
		m.metrics.active.Dec()
	}
	log.Info().Str("session", id).Msg("session discarded")
	return nil
}

// Sweep evicts sessions untouched for longer than idle. Submitted
// sessions are dropped; open ones are saved so they can be resumed.
func (m *Manager) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	evicted := 0
	for id, ent := range m.snapshotEntries() {
		ent.mu.Lock()
		switch {
		case ent.touched.After(cutoff):
		case ent.session.Phase() == exam.PhaseSubmitted || ent.session.Closed():
			m.remove(id)
			evicted++
		default:
			if _, err := m.save(ctx, ent); err != nil {
				log.Warn().Err(err).Str("session", id).Msg("sweep: save idle session")
			} else {
				evicted++
			}
		}
		ent.mu.Unlock()
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("swept idle sessions")
	}
	return evicted
}

// Shutdown saves every open session so it can be resumed after a restart.
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs []error
	for id, ent := range m.snapshotEntries() {
		ent.mu.Lock()
		if ent.session.Phase() != exam.PhaseSubmitted && !ent.session.Closed() {
			if _, err := m.save(ctx, ent); err != nil {
				errs = append(errs, fmt.Errorf("session %s: %w", id, err))
			}
		}
		ent.mu.Unlock()
	}
	return stderrors.Join(errs...)
}

func (m *Manager) snapshotEntries() map[string]*entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*entry, len(m.sessions))
	for id, ent := range m.sessions {
		out[id] = ent
	}
	return out
}

type multiSaver []SnapshotStore

// SaveSnapshot writes snap to every store. When one store fails, the
// copies already written are deleted again so that no store holds a
// snapshot of a session that stayed live.
func (ms multiSaver) SaveSnapshot(ctx context.Context, snap exam.Snapshot) error {
	for i, st := range ms {
		if err := st.SaveSnapshot(ctx, snap); err != nil {
			for _, done := range ms[:i] {
				if derr := done.Delete(ctx, snap.State.ID); derr != nil {
					log.Warn().Err(derr).Str("session", snap.State.ID).Msg("save: roll back snapshot")
				}
			}
			return err
		}
	}
	return nil
}
