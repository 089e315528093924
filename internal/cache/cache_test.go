package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certprep/internal/cache"
	"github.com/abhisek/certprep/internal/exam"
)

func makeCache(t *testing.T, ttl time.Duration) (*cache.SnapshotCache, *miniredis.Miniredis) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})
	t.Cleanup(func() { rc.Close() })
	require.NoError(t, rc.Ping(ctx).Err(), "should be able to ping redis")

	return cache.NewSnapshotCache(rc, ttl), rs
}

func snapshot(id string) exam.Snapshot {
	answer := "GMAW"
	left := 300
	return exam.Snapshot{
		Version: 1,
		SavedAt: time.Now().UTC().Truncate(time.Second),
		State: exam.State{
			ID:       id,
			ExamName: "CWI",
			Mode:     exam.ModeExam,
			Questions: []exam.Question{
				{Prompt: "Which process feeds solid wire?", Kind: exam.KindMultipleChoice, Options: []string{"SMAW", "GMAW"}, Answer: "GMAW"},
			},
			Answers:   []exam.AnswerState{{UserAnswer: &answer, Flagged: true}},
			TimeLimit: 600,
			TimeLeft:  &left,
			Phase:     exam.PhaseReviewing,
		},
	}
}

func TestSnapshotCache_SaveLoad(t *testing.T) {
	c, rs := makeCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.SaveSnapshot(ctx, snapshot("s1")))
	assert.True(t, rs.Exists("certprep:session:s1"))

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CWI", got.State.ExamName)
	assert.Equal(t, exam.PhaseReviewing, got.State.Phase)
	assert.Equal(t, 300, *got.State.TimeLeft)
	assert.Equal(t, "GMAW", *got.State.Answers[0].UserAnswer)
	assert.True(t, got.State.Answers[0].Flagged)
}

func TestSnapshotCache_LoadMissing(t *testing.T) {
	c, _ := makeCache(t, time.Hour)

	got, err := c.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCache_Expiry(t *testing.T) {
	c, rs := makeCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SaveSnapshot(ctx, snapshot("s1")))
	d, err := c.TTL(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	rs.FastForward(2 * time.Minute)

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got, "snapshot should expire")

	d, err = c.TTL(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestSnapshotCache_Delete(t *testing.T) {
	c, rs := makeCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.SaveSnapshot(ctx, snapshot("s1")))
	d, err := c.TTL(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cache.DefaultTTL, d)

	require.NoError(t, c.Delete(ctx, "s1"))
	require.NoError(t, c.Delete(ctx, "s1"))
	assert.False(t, rs.Exists(cache.Key("s1")))
}

func TestSnapshotCache_CorruptPayload(t *testing.T) {
	c, rs := makeCache(t, time.Hour)
	require.NoError(t, rs.Set(cache.Key("bad"), "{not json"))

	_, err := c.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	rs := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := cache.Connect(ctx, "redis://"+rs.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	_, err = cache.Connect(ctx, "not-a-url")
	assert.Error(t, err)
}
