package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/certprep/internal/exam"
)

// snapshotRepo implements SnapshotRepo. Snapshots are stored as the JSON
// produced by exam.Snapshot.Marshal with a few summary columns alongside.
type snapshotRepo struct {
	db *sql.DB
}

type payloadRow struct {
	Payload string `sql:"payload"`
}

func (r *snapshotRepo) SaveSnapshot(ctx context.Context, snap exam.Snapshot) error {
	payload, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	st := snap.State
	timeLeft := -1
	if st.TimeLeft != nil {
		timeLeft = *st.TimeLeft
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	ins := builder.Insert(tableSessions).
		Columns("id", "exam_name", "mode", "answered", "total", "time_left", "payload", "saved_at").
		Values(st.ID, st.ExamName, string(st.Mode), len(exam.Summarize(st.Answers).Answered),
			len(st.Questions), timeLeft, string(payload), savedAt.UTC()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if _, err := exec(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context, id string) (*exam.Snapshot, error) {
	sel := builder.Select("payload").
		From(builder.Table(tableSessions)).
		Where(entsql.EQ("id", id))
	return r.one(ctx, sel)
}

func (r *snapshotRepo) Latest(ctx context.Context) (*exam.Snapshot, error) {
	sel := builder.Select("payload").
		From(builder.Table(tableSessions)).
		OrderBy(entsql.Desc("saved_at")).
		Limit(1)
	return r.one(ctx, sel)
}

func (r *snapshotRepo) one(ctx context.Context, sel *entsql.Selector) (*exam.Snapshot, error) {
	var rows []payloadRow
	if err := scan(ctx, r.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	snap, err := exam.UnmarshalSnapshot([]byte(rows[0].Payload))
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *snapshotRepo) List(ctx context.Context) ([]SavedSession, error) {
	sel := builder.Select("id", "exam_name", "mode", "answered", "total", "time_left", "saved_at").
		From(builder.Table(tableSessions)).
		OrderBy(entsql.Desc("saved_at"))
	var out []SavedSession
	if err := scan(ctx, r.db, sel, &out); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, id string) error {
	del := builder.Delete(tableSessions).Where(entsql.EQ("id", id))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the Nth most recent save and drop everything at or before it.
	type savedAtRow struct {
		SavedAt time.Time `sql:"saved_at"`
	}
	var rows []savedAtRow
	sel := builder.Select("saved_at").
		From(builder.Table(tableSessions)).
		OrderBy(entsql.Desc("saved_at")).
		Offset(keep).
		Limit(1)
	if err := scan(ctx, r.db, sel, &rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(rows) == 0 {
		return nil // fewer than keep snapshots exist
	}

	del := builder.Delete(tableSessions).Where(entsql.LTE("saved_at", rows[0].SavedAt.UTC()))
	if _, err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
