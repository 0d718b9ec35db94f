package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docassist/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "docassist:chat:"
	historyTTL = 1 * time.Hour
)

// ChatHistoryRepository stores each session as a Redis list of JSON messages.
type ChatHistoryRepository struct {
	rdb *redis.Client
}

func NewChatHistoryRepository(rdb *redis.Client) *ChatHistoryRepository {
	return &ChatHistoryRepository{rdb: rdb}
}

func key(sessionId string) string {
	return keyPrefix + sessionId
}

func (r *ChatHistoryRepository) Append(ctx context.Context, sessionId string, msg model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key(sessionId), data)
	pipe.Expire(ctx, key(sessionId), historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat history: %w", err)
	}
	return nil
}

func (r *ChatHistoryRepository) Recent(ctx context.Context, sessionId string, limit int) ([]model.ChatMessage, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := r.rdb.LRange(ctx, key(sessionId), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat history: %w", err)
	}
	out := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (r *ChatHistoryRepository) Clear(ctx context.Context, sessionId string) (int, error) {
	var keys []string
	if sessionId != "" {
		keys = []string{key(sessionId)}
	} else {
		iter := r.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return 0, fmt.Errorf("scan chat history: %w", err)
		}
	}

	total := 0
	for _, k := range keys {
		n, err := r.rdb.LLen(ctx, k).Result()
		if err != nil {
			return total, fmt.Errorf("count chat history: %w", err)
		}
		total += int(n)
	}
	if len(keys) > 0 {
		if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
			return total, fmt.Errorf("clear chat history: %w", err)
		}
	}
	return total, nil
}
