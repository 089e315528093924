package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableResults   = "quiz_results"
	tableAnswers   = "user_answers"
	tableSessions  = "saved_sessions"
	tableLLMEvents = "llm_request_events"
)

var (
	resultsID = &schema.Column{Name: "id", Type: field.TypeString}

	resultsTable = schema.NewTable(tableResults).
		AddPrimary(resultsID).
		AddColumn(&schema.Column{Name: "exam_name", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "mode", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "score", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "total", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "percentage", Type: field.TypeFloat64}).
		AddColumn(&schema.Column{Name: "timed_out", Type: field.TypeBool, Default: false}).
		AddColumn(&schema.Column{Name: "time_limit", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "time_used", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "started_at", Type: field.TypeTime}).
		AddColumn(&schema.Column{Name: "completed_at", Type: field.TypeTime}).
		AddIndex("quizresult_exam_name_completed_at", false, []string{"exam_name", "completed_at"})

	answersResultID = &schema.Column{Name: "result_id", Type: field.TypeString}

	answersTable = schema.NewTable(tableAnswers).
		AddPrimary(answersResultID).
		AddPrimary(&schema.Column{Name: "idx", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "prompt", Type: field.TypeString, Size: 1 << 16}).
		AddColumn(&schema.Column{Name: "user_answer", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "correct_answer", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "is_correct", Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: "category", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "flagged", Type: field.TypeBool, Default: false}).
		AddColumn(&schema.Column{Name: "explanation", Type: field.TypeString, Size: 1 << 16, Default: ""}).
		AddForeignKey(&schema.ForeignKey{
			Symbol:     "user_answers_quiz_results_answers",
			Columns:    []*schema.Column{answersResultID},
			RefTable:   resultsTable,
			RefColumns: []*schema.Column{resultsID},
			OnDelete:   schema.Cascade,
		})

	sessionsTable = schema.NewTable(tableSessions).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "exam_name", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "mode", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "answered", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "total", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "time_left", Type: field.TypeInt, Default: -1}).
		AddColumn(&schema.Column{Name: "payload", Type: field.TypeString, Size: 1 << 24}).
		AddColumn(&schema.Column{Name: "saved_at", Type: field.TypeTime}).
		AddIndex("savedsession_saved_at", false, []string{"saved_at"})

	llmEventsTable = schema.NewTable(tableLLMEvents).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime}).
		AddColumn(&schema.Column{Name: "provider", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "model", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "purpose", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "input_tokens", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "output_tokens", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "latency_ms", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "success", Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 24, Default: ""}).
		AddColumn(&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 24, Default: ""}).
		AddIndex("llmrequestevent_purpose", false, []string{"purpose"})

	tables = []*schema.Table{resultsTable, answersTable, sessionsTable, llmEventsTable}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
