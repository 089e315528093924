// Package cache keeps in-flight exam sessions in Redis so the API server
// can resume them after a restart.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/certprep/internal/exam"
)

const keyPrefix = "certprep:session:"

// DefaultTTL is how long an untouched session snapshot is kept.
const DefaultTTL = 24 * time.Hour

// Connect parses a redis:// URL, connects and pings.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("redis connected")

	return rdb, nil
}

// SnapshotCache stores session snapshots under certprep:session:<id>.
// It satisfies exam.SnapshotSaver.
type SnapshotCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewSnapshotCache returns a cache whose entries expire after ttl. A zero
// ttl uses DefaultTTL.
func NewSnapshotCache(rdb redis.UniversalClient, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Key returns the Redis key for a session ID.
func Key(id string) string {
	return keyPrefix + id
}

// SaveSnapshot writes snap and resets its expiry.
func (c *SnapshotCache) SaveSnapshot(ctx context.Context, snap exam.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(snap.State.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache snapshot %s: %w", snap.State.ID, err)
	}
	return nil
}

// Load returns the cached snapshot, or nil if it is missing or expired.
func (c *SnapshotCache) Load(ctx context.Context, id string) (*exam.Snapshot, error) {
	data, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cached snapshot %s: %w", id, err)
	}

	snap, err := exam.UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete drops a cached snapshot. Missing keys are not an error.
func (c *SnapshotCache) Delete(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("delete cached snapshot %s: %w", id, err)
	}
	return nil
}

// TTL reports the remaining lifetime of a cached snapshot, or zero if it
// does not exist.
func (c *SnapshotCache) TTL(ctx context.Context, id string) (time.Duration, error) {
	d, err := c.rdb.TTL(ctx, Key(id)).Result()
	if err != nil {
		return 0, fmt.Errorf("ttl of cached snapshot %s: %w", id, err)
	}
	if d < 0 {
		return 0, nil
	}
	return d, nil
}
