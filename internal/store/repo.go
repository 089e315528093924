package store

import (
	"context"
	"time"

	"github.com/abhisek/certprep/internal/exam"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Exam    string    // exam name filter, results only
	Purpose string    // purpose filter, LLM events only
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// CategoryStat aggregates answers in one category across attempts.
type CategoryStat struct {
	Category string `sql:"category" json:"category"`
	Answered int    `sql:"answered" json:"answered"`
	Correct  int    `sql:"correct" json:"correct"`
}

// Accuracy returns Correct/Answered as a percentage.
func (c CategoryStat) Accuracy() float64 {
	if c.Answered == 0 {
		return 0
	}
	return 100 * float64(c.Correct) / float64(c.Answered)
}

// ResultRepo stores finished attempts. It satisfies exam.ResultRecorder.
type ResultRepo interface {
	// Record stores a result and its answers atomically.
	Record(ctx context.Context, result *exam.QuizResult) error

	// Get returns a result with its answers, or nil if it does not exist.
	Get(ctx context.Context, id string) (*exam.QuizResult, error)

	// List returns results newest first, without per-question answers.
	List(ctx context.Context, opts QueryOpts) ([]exam.QuizResult, error)

	// CategoryStats aggregates answered questions per category. An empty
	// exam name covers every exam.
	CategoryStats(ctx context.Context, examName string) ([]CategoryStat, error)

	// Delete removes a result and its answers.
	Delete(ctx context.Context, id string) error

	// RecentPrompts returns up to limit distinct question prompts from
	// the latest attempts of an exam, most recent last.
	RecentPrompts(ctx context.Context, examName string, limit int) ([]string, error)
}

// SavedSession summarises a saved snapshot for listing.
type SavedSession struct {
	ID       string    `sql:"id"`
	ExamName string    `sql:"exam_name"`
	Mode     string    `sql:"mode"`
	Answered int       `sql:"answered"`
	Total    int       `sql:"total"`
	TimeLeft int       `sql:"time_left"` // -1 when untimed
	SavedAt  time.Time `sql:"saved_at"`
}

// SnapshotRepo manages saved, resumable sessions. It satisfies
// exam.SnapshotSaver.
type SnapshotRepo interface {
	// SaveSnapshot stores snap, replacing any earlier save of the same session.
	SaveSnapshot(ctx context.Context, snap exam.Snapshot) error

	// Load returns the snapshot for a session, or nil if none exists.
	Load(ctx context.Context, id string) (*exam.Snapshot, error)

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*exam.Snapshot, error)

	// List returns saved sessions newest first.
	List(ctx context.Context) ([]SavedSession, error)

	// Delete removes a saved session. Deleting a missing one is not an error.
	Delete(ctx context.Context, id string) error

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID           int       `sql:"id"`
	Timestamp    time.Time `sql:"created_at"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
}

// LLMUsageStats aggregates token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
