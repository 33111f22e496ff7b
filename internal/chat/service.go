package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-analyzer/internal/llm"
	"proposal-analyzer/internal/shared/telemetry"
)

// MaxMessageLength caps a single chat message.
const MaxMessageLength = 1000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
	ErrNotConfigured  = errors.New("chat assistant not configured")
)

// Request is one chat turn. Context carries optional grounding snippets
// (proposal excerpts, prior answers) prepended to the prompt.
type Request struct {
	Message        string   `json:"message"`
	ConversationID string   `json:"conversation_id"`
	Context        []string `json:"context"`
}

// Response is the assistant's reply.
type Response struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	Timestamp      string `json:"timestamp"`
}

// Service answers synchronous assistant questions about proposals.
type Service struct {
	LLM llm.Client

	now func() time.Time
}

// NewService builds a chat service over the given model client.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client, now: time.Now}
}

// Reply validates the request and returns the assistant's answer. A missing
// conversation id gets a fresh one so callers can thread follow-ups.
func (s *Service) Reply(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}
	if len(message) > MaxMessageLength {
		return Response{}, ErrMessageTooLong
	}
	if s.LLM == nil {
		return Response{}, ErrNotConfigured
	}

	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	answer, err := s.LLM.Complete(ctx, llm.ChatPrompt(message, req.Context))
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return Response{}, ErrNotConfigured
		}
		telemetry.Error("chat.completion_failed", map[string]any{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
		return Response{}, err
	}

	return Response{
		Response:       strings.TrimSpace(answer),
		ConversationID: conversationID,
		Timestamp:      s.nowFunc().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) nowFunc() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
