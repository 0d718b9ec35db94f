package memory

import (
	"context"
	"sync"
	"time"

	"docassist/internal/model"

	"github.com/patrickmn/go-cache"
)

type ChatHistoryRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewChatHistoryRepository() *ChatHistoryRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ChatHistoryRepository{
		cache: c,
	}
}

func (r *ChatHistoryRepository) Append(_ context.Context, sessionId string, msg model.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.load(sessionId)
	r.cache.Set(sessionId, append(history, msg), cache.DefaultExpiration)
	return nil
}

func (r *ChatHistoryRepository) Recent(_ context.Context, sessionId string, limit int) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.load(sessionId)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return append([]model.ChatMessage(nil), history...), nil
}

func (r *ChatHistoryRepository) Clear(_ context.Context, sessionId string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sessionId != "" {
		n := len(r.load(sessionId))
		r.cache.Delete(sessionId)
		return n, nil
	}
	n := 0
	for _, item := range r.cache.Items() {
		if history, ok := item.Object.([]model.ChatMessage); ok {
			n += len(history)
		}
	}
	r.cache.Flush()
	return n, nil
}

func (r *ChatHistoryRepository) load(sessionId string) []model.ChatMessage {
	if x, found := r.cache.Get(sessionId); found {
		return x.([]model.ChatMessage)
	}
	return nil
}
