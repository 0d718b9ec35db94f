package contract

import (
	"context"

	"docassist/internal/model"
)

type ChatHistoryRepository interface {
	Append(ctx context.Context, sessionId string, msg model.ChatMessage) error
	// Recent returns at most limit messages, oldest first.
	Recent(ctx context.Context, sessionId string, limit int) ([]model.ChatMessage, error)
	// Clear drops one session's history, or every session when sessionId is empty.
	Clear(ctx context.Context, sessionId string) (int, error)
}
