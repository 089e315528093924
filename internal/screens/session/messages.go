package session

import (
	"time"

	"github.com/abhisek/certprep/internal/exam"
)

// questionsReadyMsg is sent when the question source has answered.
type questionsReadyMsg struct {
	Questions []exam.Question
	Err       error
}

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time
