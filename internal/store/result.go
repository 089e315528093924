package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/certprep/internal/exam"
)

var resultColumns = []string{
	"id", "exam_name", "mode", "score", "total", "percentage",
	"timed_out", "time_limit", "time_used", "started_at", "completed_at",
}

type resultRow struct {
	ID          string    `sql:"id"`
	ExamName    string    `sql:"exam_name"`
	Mode        string    `sql:"mode"`
	Score       int       `sql:"score"`
	Total       int       `sql:"total"`
	Percentage  float64   `sql:"percentage"`
	TimedOut    bool      `sql:"timed_out"`
	TimeLimit   int       `sql:"time_limit"`
	TimeUsed    int       `sql:"time_used"`
	StartedAt   time.Time `sql:"started_at"`
	CompletedAt time.Time `sql:"completed_at"`
}

func (r resultRow) toResult() exam.QuizResult {
	return exam.QuizResult{
		ID:          r.ID,
		ExamName:    r.ExamName,
		Mode:        exam.Mode(r.Mode),
		Score:       r.Score,
		Total:       r.Total,
		Percentage:  r.Percentage,
		TimedOut:    r.TimedOut,
		TimeLimit:   r.TimeLimit,
		TimeUsed:    r.TimeUsed,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
	}
}

type answerRow struct {
	Index         int    `sql:"idx"`
	Prompt        string `sql:"prompt"`
	UserAnswer    string `sql:"user_answer"`
	CorrectAnswer string `sql:"correct_answer"`
	IsCorrect     bool   `sql:"is_correct"`
	Category      string `sql:"category"`
	Flagged       bool   `sql:"flagged"`
	Explanation   string `sql:"explanation"`
}

// resultRepo implements ResultRepo.
type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Record(ctx context.Context, res *exam.QuizResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ins := builder.Insert(tableResults).
		Columns(resultColumns...).
		Values(
			res.ID, res.ExamName, string(res.Mode), res.Score, res.Total, res.Percentage,
			res.TimedOut, res.TimeLimit, res.TimeUsed,
			res.StartedAt.UTC(), res.CompletedAt.UTC(),
		)
	if _, err := exec(ctx, tx, ins); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	if len(res.Answers) > 0 {
		ans := builder.Insert(tableAnswers).
			Columns("result_id", "idx", "prompt", "user_answer", "correct_answer", "is_correct", "category", "flagged", "explanation")
		for _, a := range res.Answers {
			ans.Values(res.ID, a.Index, a.Prompt, a.UserAnswer, a.CorrectAnswer, a.IsCorrect, a.Category, a.Flagged, a.Explanation)
		}
		if _, err := exec(ctx, tx, ans); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit result: %w", err)
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, id string) (*exam.QuizResult, error) {
	var rows []resultRow
	sel := builder.Select(resultColumns...).
		From(builder.Table(tableResults)).
		Where(entsql.EQ("id", id))
	if err := scan(ctx, r.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	res := rows[0].toResult()

	var answers []answerRow
	sel = builder.Select("idx", "prompt", "user_answer", "correct_answer", "is_correct", "category", "flagged", "explanation").
		From(builder.Table(tableAnswers)).
		Where(entsql.EQ("result_id", id)).
		OrderBy("idx")
	if err := scan(ctx, r.db, sel, &answers); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	res.Answers = make([]exam.UserAnswer, len(answers))
	for i, a := range answers {
		res.Answers[i] = exam.UserAnswer{
			Index:         a.Index,
			Prompt:        a.Prompt,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			Category:      a.Category,
			Flagged:       a.Flagged,
			Explanation:   a.Explanation,
		}
	}
	return &res, nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]exam.QuizResult, error) {
	sel := builder.Select(resultColumns...).
		From(builder.Table(tableResults)).
		OrderBy(entsql.Desc("completed_at"))

	var preds []*entsql.Predicate
	if opts.Exam != "" {
		preds = append(preds, entsql.EQ("exam_name", opts.Exam))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("completed_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("completed_at", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []resultRow
	if err := scan(ctx, r.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]exam.QuizResult, len(rows))
	for i, row := range rows {
		out[i] = row.toResult()
	}
	return out, nil
}

func (r *resultRepo) CategoryStats(ctx context.Context, examName string) ([]CategoryStat, error) {
	a := builder.Table(tableAnswers)
	q := builder.Table(tableResults)
	sel := builder.Select(
		entsql.As(a.C("category"), "category"),
		entsql.As(entsql.Count("*"), "answered"),
		entsql.As(entsql.Sum(a.C("is_correct")), "correct"),
	).
		From(a).
		Join(q).On(a.C("result_id"), q.C("id")).
		GroupBy(a.C("category")).
		OrderBy(a.C("category"))
	if examName != "" {
		sel.Where(entsql.EQ(q.C("exam_name"), examName))
	}

	var stats []CategoryStat
	if err := scan(ctx, r.db, sel, &stats); err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return stats, nil
}

func (r *resultRepo) Delete(ctx context.Context, id string) error {
	del := builder.Delete(tableResults).Where(entsql.EQ("id", id))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}

func (r *resultRepo) RecentPrompts(ctx context.Context, examName string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	a := builder.Table(tableAnswers)
	q := builder.Table(tableResults)
	// Over-fetch a little since a prompt can repeat across attempts.
	sel := builder.Select(entsql.As(a.C("prompt"), "prompt")).
		From(a).
		Join(q).On(a.C("result_id"), q.C("id")).
		Where(entsql.EQ(q.C("exam_name"), examName)).
		OrderBy(entsql.Desc(q.C("completed_at")), entsql.Desc(a.C("idx"))).
		Limit(limit * 2)

	var rows []struct {
		Prompt string `sql:"prompt"`
	}
	if err := scan(ctx, r.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("recent prompts: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	var newest []string
	for _, row := range rows {
		if seen[row.Prompt] {
			continue
		}
		seen[row.Prompt] = true
		newest = append(newest, row.Prompt)
		if len(newest) == limit {
			break
		}
	}
	slices.Reverse(newest)
	return newest, nil
}
