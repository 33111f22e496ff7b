package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeLLM struct {
	reply string
	err   error
	last  string
}

func (f *fakeLLM) Analyze(ctx context.Context, prompt string) (string, error) {
	return f.Complete(ctx, prompt)
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.last = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestReplyReturnsAnswerAndConversationID(t *testing.T) {
	svc := NewService(&fakeLLM{reply: "  The proposal targets SMB logistics.  "})

	resp, err := svc.Reply(context.Background(), Request{Message: "What market does this target?"})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.Response != "The proposal targets SMB logistics." {
		t.Fatalf("response = %q", resp.Response)
	}
	if resp.ConversationID == "" {
		t.Fatalf("conversation id missing")
	}
	if resp.Timestamp == "" {
		t.Fatalf("timestamp missing")
	}
}

func TestReplyKeepsProvidedConversationID(t *testing.T) {
	svc := NewService(&fakeLLM{reply: "answer"})

	resp, err := svc.Reply(context.Background(), Request{Message: "hi", ConversationID: "conv-7"})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.ConversationID != "conv-7" {
		t.Fatalf("conversation id = %q", resp.ConversationID)
	}
}

func TestReplyIncludesContextInPrompt(t *testing.T) {
	llm := &fakeLLM{reply: "answer"}
	svc := NewService(llm)

	_, err := svc.Reply(context.Background(), Request{
		Message: "Summarize the risks.",
		Context: []string{"Risk section: runway is 9 months."},
	})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(llm.last, "runway is 9 months") {
		t.Fatalf("prompt missing context: %q", llm.last)
	}
}

func TestReplyValidation(t *testing.T) {
	svc := NewService(&fakeLLM{reply: "x"})

	if _, err := svc.Reply(context.Background(), Request{Message: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	long := strings.Repeat("a", MaxMessageLength+1)
	if _, err := svc.Reply(context.Background(), Request{Message: long}); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
}

func TestReplyTimestampIsUTC(t *testing.T) {
	svc := NewService(&fakeLLM{reply: "x"})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	}

	resp, err := svc.Reply(context.Background(), Request{Message: "hi"})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if resp.Timestamp != "2026-03-01T09:30:00Z" {
		t.Fatalf("timestamp = %q", resp.Timestamp)
	}
}

func TestChatHandler(t *testing.T) {
	h := NewHandler(NewService(&fakeLLM{reply: "hello"}))
	router := newTestRouter(h)

	body, _ := json.Marshal(Request{Message: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"response":"hello"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestChatHandlerEmptyMessage(t *testing.T) {
	h := NewHandler(NewService(&fakeLLM{reply: "hello"}))
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestChatHandlerUpstreamFailure(t *testing.T) {
	h := NewHandler(NewService(&fakeLLM{err: errors.New("model down")}))
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}
