package exam

import "time"

// NotAnswered is recorded as the user answer of an unanswered question.
const NotAnswered = "Not Answered"

// UserAnswer is the scored outcome of one question.
type UserAnswer struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Category      string `json:"category,omitempty"`
	Flagged       bool   `json:"flagged"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResult is the immutable outcome of a submitted session.
type QuizResult struct {
	ID         string       `json:"id"`
	ExamName   string       `json:"exam_name"`
	Mode       Mode         `json:"mode"`
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage float64      `json:"percentage"`
	Answers    []UserAnswer `json:"answers"`

	// TimedOut is set when the countdown forced submission.
	TimedOut bool `json:"timed_out"`

	TimeLimit   int       `json:"time_limit,omitempty"`
	TimeUsed    int       `json:"time_used,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Score grades answers against questions. Unanswered questions are
// recorded as NotAnswered and never count as correct.
func Score(questions []Question, answers []AnswerState) (score int, graded []UserAnswer) {
	graded = make([]UserAnswer, len(questions))
	for i, q := range questions {
		ua := UserAnswer{
			Index:         i,
			Prompt:        q.Prompt,
			UserAnswer:    NotAnswered,
			CorrectAnswer: q.Answer,
			Category:      q.Category,
			Flagged:       answers[i].Flagged,
			Explanation:   q.Explanation,
		}
		if a := answers[i].UserAnswer; a != nil {
			ua.UserAnswer = *a
			ua.IsCorrect = q.IsCorrect(*a)
		}
		if ua.IsCorrect {
			score++
		}
		graded[i] = ua
	}
	return score, graded
}

// Percentage returns 100*score/total, or 0 when total is zero.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(score) / float64(total)
}
