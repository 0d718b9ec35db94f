package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docassist/internal/constant"
	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/mapper"
	"docassist/internal/model"
	"docassist/internal/pkg/logger"
	"docassist/internal/repository/contract"
	"docassist/pkg/llm"
)

const groundedAnswerPrompt = "Answer only using the provided context. If the answer is not in the context, " +
	"say the information is not available. Use the conversation to understand the question, " +
	"but do not add facts not in the context."

type IChatService interface {
	Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	Clear(ctx context.Context, sessionId string) (*dto.ClearChatResponse, error)
}

type chatService struct {
	documents  IDocumentService
	history    contract.ChatHistoryRepository
	generator  llm.LLMProvider // nil answers extractively
	mapper     *mapper.ChatMapper
	topK       int
	maxHistory int
	logger     logger.ILogger
}

func NewChatService(documents IDocumentService, history contract.ChatHistoryRepository, generator llm.LLMProvider, topK, maxHistory int, log logger.ILogger) IChatService {
	return &chatService{
		documents:  documents,
		history:    history,
		generator:  generator,
		mapper:     mapper.NewChatMapper(),
		topK:       topK,
		maxHistory: maxHistory,
		logger:     log,
	}
}

// Send answers from the best matching chunks, through the LLM when one is configured
// and extractively otherwise. A missing session id starts a new conversation.
func (s *chatService) Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = newHexId()
	}

	if err := s.history.Append(ctx, sessionId, model.ChatMessage{
		Role: string(entity.ChatRoleUser), Content: req.Message, CreatedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	hits, err := s.documents.Search(ctx, req.Message, s.topK, "")
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	history, err := s.history.Recent(ctx, sessionId, s.maxHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	answer := constant.AnswerNotAvailable
	if len(hits) > 0 {
		answer = s.answer(ctx, req.Message, hits, history)
	}

	cited := make([]entity.ChatCitation, len(hits))
	for i, h := range hits {
		cited[i] = entity.ChatCitation{DocName: h.Doc.Name, ChunkId: h.ChunkId, SourceLink: h.Doc.SourceLink}
	}
	citations := s.mapper.CitationsToDTO(cited)

	if err := s.history.Append(ctx, sessionId, model.ChatMessage{
		Role: string(entity.ChatRoleAssistant), Content: answer, CreatedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("store assistant message: %w", err)
	}

	s.logger.Debug("ChatService", "chat answered", map[string]interface{}{
		"session_id": sessionId, "hits": len(hits), "history": len(history),
	})

	return &dto.SendChatResponse{SessionId: sessionId, Answer: answer, Citations: citations}, nil
}

func (s *chatService) Clear(ctx context.Context, sessionId string) (*dto.ClearChatResponse, error) {
	n, err := s.history.Clear(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ChatService", "chat history cleared", map[string]interface{}{
		"session_id": sessionId, "cleared": n,
	})
	return &dto.ClearChatResponse{Cleared: n, SessionId: sessionId}, nil
}

func (s *chatService) answer(ctx context.Context, question string, hits []ChunkHit, history []model.ChatMessage) string {
	if s.generator == nil {
		return hits[0].Text
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	var prompt strings.Builder
	if len(history) > 0 {
		prompt.WriteString("Conversation so far:\n")
		for _, m := range history {
			fmt.Fprintf(&prompt, "%s: %s\n", m.Role, m.Content)
		}
		prompt.WriteString("\n")
	}
	fmt.Fprintf(&prompt, "Context:\n%s\n\nQuestion: %s", strings.Join(texts, "\n\n"), question)

	answer, err := s.generator.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: groundedAnswerPrompt},
		{Role: llm.RoleUser, Content: prompt.String()},
	}, llm.WithTemperature(0.1))
	if err != nil {
		s.logger.Warn("ChatService", "llm answer failed", map[string]interface{}{"error": err.Error()})
		return constant.AnswerNotAvailable
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return constant.AnswerNotAvailable
	}
	return answer
}
