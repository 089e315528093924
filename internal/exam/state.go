package exam

import (
	"slices"
	"time"
)

// Phase is the lifecycle phase of a session.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseReviewing  Phase = "reviewing"
	PhaseSubmitted  Phase = "submitted"
)

// Mode selects how an attempt is run.
type Mode string

const (
	ModePractice Mode = "practice" // Untimed, explanations shown after submit
	ModeExam     Mode = "exam"     // Timed with the catalog limit
)

// AnswerState is the mutable per-question record.
type AnswerState struct {
	// UserAnswer is nil until the question is answered. It never changes
	// afterwards.
	UserAnswer *string `json:"user_answer"`

	Flagged bool `json:"flagged"`

	// Struck holds the eliminated options, kept sorted.
	Struck []string `json:"struck,omitempty"`
}

// Answered reports whether an answer has been selected.
func (a AnswerState) Answered() bool {
	return a.UserAnswer != nil
}

// IsStruck reports whether option has been struck through.
func (a AnswerState) IsStruck(option string) bool {
	_, found := slices.BinarySearch(a.Struck, option)
	return found
}

func (a *AnswerState) toggleStruck(option string) {
	i, found := slices.BinarySearch(a.Struck, option)
	if found {
		a.Struck = slices.Delete(a.Struck, i, i+1)
		return
	}
	a.Struck = slices.Insert(a.Struck, i, option)
}

func (a AnswerState) clone() AnswerState {
	c := AnswerState{Flagged: a.Flagged, Struck: slices.Clone(a.Struck)}
	if a.UserAnswer != nil {
		v := *a.UserAnswer
		c.UserAnswer = &v
	}
	return c
}

// State is the aggregate owned by a Session.
type State struct {
	// ID identifies the attempt; the QuizResult reuses it.
	ID string `json:"id"`

	ExamName string `json:"exam_name"`
	Mode     Mode   `json:"mode"`

	// Questions is fixed for the lifetime of the session.
	Questions []Question `json:"questions"`

	// Answers is parallel to Questions.
	Answers []AnswerState `json:"answers"`

	// CurrentIndex is always within [0, len(Questions)-1].
	CurrentIndex int `json:"current_index"`

	// TimeLimit is the initial limit in seconds. Zero means untimed.
	TimeLimit int `json:"time_limit,omitempty"`

	// TimeLeft is the remaining time in seconds. Nil means untimed.
	TimeLeft *int `json:"time_left,omitempty"`

	Phase Phase `json:"phase"`

	// FiredWarnings lists warning thresholds (seconds) already announced.
	FiredWarnings []int `json:"fired_warnings,omitempty"`

	StartedAt time.Time `json:"started_at"`
}

// Timed reports whether the session has a countdown.
func (s State) Timed() bool {
	return s.TimeLeft != nil
}

// Current returns the question under the cursor.
func (s State) Current() Question {
	return s.Questions[s.CurrentIndex]
}

// CurrentAnswer returns the answer state under the cursor.
func (s State) CurrentAnswer() AnswerState {
	return s.Answers[s.CurrentIndex]
}

// Clone returns a deep copy so callers cannot mutate session internals.
func (s State) Clone() State {
	c := s
	c.Questions = slices.Clone(s.Questions)
	c.Answers = make([]AnswerState, len(s.Answers))
	for i, a := range s.Answers {
		c.Answers[i] = a.clone()
	}
	if s.TimeLeft != nil {
		v := *s.TimeLeft
		c.TimeLeft = &v
	}
	c.FiredWarnings = slices.Clone(s.FiredWarnings)
	return c
}

// ReviewSummary partitions question indices for the review screen.
// Flagged is independent: an index may appear in Answered and Flagged.
type ReviewSummary struct {
	Answered   []int `json:"answered"`
	Unanswered []int `json:"unanswered"`
	Flagged    []int `json:"flagged"`
}

// Summarize builds the review partition for answers.
func Summarize(answers []AnswerState) ReviewSummary {
	rs := ReviewSummary{
		Answered:   []int{},
		Unanswered: []int{},
		Flagged:    []int{},
	}
	for i, a := range answers {
		if a.Answered() {
			rs.Answered = append(rs.Answered, i)
		} else {
			rs.Unanswered = append(rs.Unanswered, i)
		}
		if a.Flagged {
			rs.Flagged = append(rs.Flagged, i)
		}
	}
	return rs
}
