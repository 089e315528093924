package server

import (
	"time"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
)

// QuestionView is the current question as shown to the candidate. The
// correct answer is only revealed after submission, or in practice mode
// once the question is answered.
type QuestionView struct {
	Index      int       `json:"index"`
	Prompt     string    `json:"prompt"`
	Kind       exam.Kind `json:"kind"`
	Options    []string  `json:"options"`
	Category   string    `json:"category,omitempty"`
	Flagged    bool      `json:"flagged"`
	Struck     []string  `json:"struck"`
	UserAnswer *string   `json:"user_answer"`

	CorrectAnswer string `json:"correct_answer,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// SessionView is the API representation of a live session.
type SessionView struct {
	ID           string             `json:"id"`
	Exam         string             `json:"exam"`
	Mode         exam.Mode          `json:"mode"`
	Phase        exam.Phase         `json:"phase"`
	CurrentIndex int                `json:"current_index"`
	Total        int                `json:"total"`
	TimeLimit    int                `json:"time_limit,omitempty"`
	TimeLeft     *int               `json:"time_left,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
	Question     QuestionView       `json:"question"`
	Review       exam.ReviewSummary `json:"review"`
	Warnings     []exam.Warning     `json:"warnings,omitempty"`
	Result       *exam.QuizResult   `json:"result,omitempty"`
}

func newSessionView(s *exam.Session, warnings []exam.Warning) SessionView {
	st := s.State()
	q := st.Current()
	a := st.CurrentAnswer()

	qv := QuestionView{
		Index:      st.CurrentIndex,
		Prompt:     q.Prompt,
		Kind:       q.Kind,
		Options:    q.Choices(),
		Category:   q.Category,
		Flagged:    a.Flagged,
		Struck:     a.Struck,
		UserAnswer: a.UserAnswer,
	}
	if qv.Struck == nil {
		qv.Struck = []string{}
	}
	reveal := st.Phase == exam.PhaseSubmitted || (st.Mode == exam.ModePractice && a.Answered())
	if reveal {
		qv.CorrectAnswer = q.Answer
		qv.Reference = q.Reference
		qv.Explanation = q.Explanation
	}

	return SessionView{
		ID:           st.ID,
		Exam:         st.ExamName,
		Mode:         st.Mode,
		Phase:        st.Phase,
		CurrentIndex: st.CurrentIndex,
		Total:        len(st.Questions),
		TimeLimit:    st.TimeLimit,
		TimeLeft:     st.TimeLeft,
		StartedAt:    st.StartedAt,
		Question:     qv,
		Review:       s.Review(),
		Warnings:     warnings,
		Result:       s.Result(),
	}
}

// SavedView acknowledges a saved session.
type SavedView struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
}

// ExamView is a catalog entry.
type ExamView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Body          string   `json:"body"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	QuestionCount int      `json:"question_count"`
	TimeLimitMins int      `json:"time_limit_mins"`
}

func newExamView(e catalog.Exam) ExamView {
	return ExamView{
		ID:            e.ID,
		Name:          e.Name,
		Body:          e.Body,
		Description:   e.Description,
		Categories:    e.Categories,
		QuestionCount: e.QuestionCount,
		TimeLimitMins: e.TimeLimitMins,
	}
}
