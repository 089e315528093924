package cmd

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certprep/internal/cache"
	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
)

func TestPrintExamsShowsBankSize(t *testing.T) {
	bank := questions.NewStaticSource(1)
	var buf bytes.Buffer
	printExams(&buf, bank, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(catalog.All())+2)
	assert.Contains(t, lines[0], "Bank")
	for i, e := range catalog.All() {
		fields := strings.Fields(lines[i+2])
		assert.Equal(t, e.ID, fields[0])
		assert.Equal(t, strconv.Itoa(bank.Available(e.ID)), fields[len(fields)-1])
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	rs := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { rdb.Close() })
	sc := cache.NewSnapshotCache(rdb, time.Hour)

	assert.Equal(t, "-", cacheExpiry(ctx, nil, "s1"), "no redis configured")
	assert.Equal(t, "expired", cacheExpiry(ctx, sc, "s1"))

	snap := exam.Snapshot{Version: 1, SavedAt: time.Now(), State: exam.State{ID: "s1"}}
	require.NoError(t, sc.SaveSnapshot(ctx, snap))
	assert.Equal(t, "1h0m0s", cacheExpiry(ctx, sc, "s1"))

	rs.FastForward(90 * time.Minute)
	assert.Equal(t, "expired", cacheExpiry(ctx, sc, "s1"))
}
