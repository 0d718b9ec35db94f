// Package session owns the client-held conversation: the session id, the chat log
// and the last citation set. It has a single writer and no locking; the last write wins.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docassist/internal/confirm"
	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/mapper"
	"docassist/internal/pkg/logger"
)

const (
	moduleName      = "Session"
	ClearChatPrompt = "Clear this chat history?"
)

var ErrEmptyMessage = errors.New("message is empty")

type ChatAPI interface {
	Chat(ctx context.Context, req dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearChat(ctx context.Context, sessionId string) error
}

// Conversation is the state value reset as a unit.
type Conversation struct {
	SessionId string
	Entries   []entity.ChatEntry
	Citations []entity.ChatCitation
	Answered  bool // false until an answer arrives, so "No citations" is never shown while waiting
}

type Reply struct {
	SessionId string
	Answer    string
	Citations []entity.ChatCitation
}

type Controller struct {
	api    ChatAPI
	conv   Conversation
	mapper *mapper.ChatMapper
	logger logger.ILogger
}

func NewController(api ChatAPI, log logger.ILogger) *Controller {
	return &Controller{
		api:    api,
		mapper: mapper.NewChatMapper(),
		logger: log,
	}
}

// Current returns the held session id; ok is false when no conversation has started.
func (c *Controller) Current() (id string, ok bool) {
	return c.conv.SessionId, c.conv.SessionId != ""
}

// Adopt overwrites the held id unconditionally. An empty id leaves the controller
// without a session, so the next request lets the service allocate a fresh one.
func (c *Controller) Adopt(id string) {
	if id != c.conv.SessionId {
		c.logger.Info(moduleName, "session adopted", map[string]interface{}{
			"previous": c.conv.SessionId, "session_id": id,
		})
	}
	c.conv.SessionId = id
}

// Reset is the only way back to the initial "no conversation" state.
func (c *Controller) Reset() {
	c.conv = Conversation{}
}

// Snapshot returns a copy of the conversation state.
func (c *Controller) Snapshot() Conversation {
	snap := c.conv
	snap.Entries = append([]entity.ChatEntry(nil), c.conv.Entries...)
	snap.Citations = append([]entity.ChatCitation(nil), c.conv.Citations...)
	return snap
}

// Send posts message with the current session id (or none) and adopts whatever id comes back.
// On failure the session id is left as it was.
func (c *Controller) Send(ctx context.Context, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	c.conv.Entries = append(c.conv.Entries, entity.ChatEntry{Role: entity.ChatRoleUser, Text: message})

	req := dto.SendChatRequest{Message: message}
	if id, ok := c.Current(); ok {
		req.SessionId = id
	}

	resp, err := c.api.Chat(ctx, req)
	if err != nil {
		c.logger.Error(moduleName, "chat request failed", map[string]interface{}{
			"session_id": req.SessionId, "error": err.Error(),
		})
		return nil, fmt.Errorf("send chat: %w", err)
	}

	c.Adopt(resp.SessionId)
	citations := c.mapper.CitationsToEntities(resp.Citations)
	c.conv.Entries = append(c.conv.Entries, entity.ChatEntry{Role: entity.ChatRoleAssistant, Text: resp.Answer})
	c.conv.Citations = citations
	c.conv.Answered = true

	return &Reply{SessionId: resp.SessionId, Answer: resp.Answer, Citations: citations}, nil
}

// Clear asks for confirmation, tells the service to drop the history and resets local state.
// Declining is a no-op and returns false with a nil error.
func (c *Controller) Clear(ctx context.Context, confirmer confirm.Confirmer) (bool, error) {
	if !confirmer.Confirm(ClearChatPrompt) {
		return false, nil
	}
	id, _ := c.Current()
	if err := c.api.ClearChat(ctx, id); err != nil {
		return false, fmt.Errorf("clear chat: %w", err)
	}
	c.Reset()
	return true, nil
}
