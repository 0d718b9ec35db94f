package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"docassist/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a live Redis: REDIS_TEST_URL=redis://localhost:6379/15 go test ./internal/repository/redisstore/
func newTestRepo(t *testing.T) *ChatHistoryRepository {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return NewChatHistoryRepository(rdb)
}

func TestAppendRecentClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	session := uuid.NewString()
	other := uuid.NewString()
	t.Cleanup(func() {
		_, _ = repo.Clear(ctx, session)
		_, _ = repo.Clear(ctx, other)
	})

	for _, content := range []string{"q1", "a1", "q2", "a2"} {
		require.NoError(t, repo.Append(ctx, session, model.ChatMessage{Role: "user", Content: content, CreatedAt: time.Now()}))
	}
	require.NoError(t, repo.Append(ctx, other, model.ChatMessage{Role: "user", Content: "x"}))

	recent, err := repo.Recent(ctx, session, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "a1", recent[0].Content)
	assert.Equal(t, "a2", recent[2].Content)

	ttl, err := repo.rdb.TTL(ctx, key(session)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	n, err := repo.Clear(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	recent, err = repo.Recent(ctx, session, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	left, err := repo.Recent(ctx, other, 0)
	require.NoError(t, err)
	assert.Len(t, left, 1, "clearing one session leaves the others")
}
