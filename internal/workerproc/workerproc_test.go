package workerproc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"proposal-analyzer/internal/bootstrap"
	"proposal-analyzer/internal/queue"
)

func encode(t *testing.T, msg queue.Message) string {
	t.Helper()
	body, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	return string(body)
}

func TestParseMessageValid(t *testing.T) {
	body := encode(t, queue.Message{
		ProposalID: "prop-1",
		RequestID:  "req-1",
		WebhookURL: "https://example.com/hook",
		Documents: []queue.MessageDocument{
			{FileName: "plan.pdf", StorageKey: "staging/prop-1/plan.pdf", MimeType: "application/pdf"},
		},
	})

	msg, meta, err := ParseMessage(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ProposalID != "prop-1" || msg.RequestID != "req-1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if meta.BodyLen != len(body) {
		t.Fatalf("expected body len %d, got %d", len(body), meta.BodyLen)
	}
	if meta.BodySHA == "" {
		t.Fatalf("expected body sha")
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "\n"} {
		_, _, err := ParseMessage(body)
		var emptyErr ErrEmptyBody
		if !errors.As(err, &emptyErr) {
			t.Fatalf("body %q: expected ErrEmptyBody, got %v", body, err)
		}
	}
}

func TestParseMessageDecodeFailure(t *testing.T) {
	_, meta, err := ParseMessage("{not-json")
	var decodeErr ErrDecode
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodySHA == "" {
		t.Fatalf("expected body sha for diagnostics")
	}
	if !strings.Contains(err.Error(), "decode message") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestParseMessageMissingProposalID(t *testing.T) {
	body := encode(t, queue.Message{
		RequestID: "req-2",
		Documents: []queue.MessageDocument{{FileName: "plan.txt", StorageKey: "k"}},
	})

	_, _, err := ParseMessage(body)
	var missingErr ErrMissingProposalID
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected ErrMissingProposalID, got %v", err)
	}
	if missingErr.RequestID != "req-2" {
		t.Fatalf("expected request id carried, got %q", missingErr.RequestID)
	}
}

func TestParseMessageNoDocuments(t *testing.T) {
	body := encode(t, queue.Message{ProposalID: "prop-3", RequestID: "req-3"})

	_, _, err := ParseMessage(body)
	var noDocsErr ErrNoDocuments
	if !errors.As(err, &noDocsErr) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
	if noDocsErr.ProposalID != "prop-3" {
		t.Fatalf("expected proposal id carried, got %q", noDocsErr.ProposalID)
	}
}

func TestHandleMessageRequiresService(t *testing.T) {
	body := encode(t, queue.Message{
		ProposalID: "prop-4",
		Documents:  []queue.MessageDocument{{FileName: "plan.txt", StorageKey: "k"}},
	})

	if err := HandleMessage(context.Background(), &bootstrap.App{}, body); err == nil {
		t.Fatalf("expected error without analysis service")
	}
	if err := HandleMessage(context.Background(), nil, body); err == nil {
		t.Fatalf("expected error without app")
	}
}

func TestWithParsedMessageRoundTrip(t *testing.T) {
	msg := queue.Message{ProposalID: "prop-5", RequestID: "req-5"}
	ctx := WithParsedMessage(context.Background(), msg)

	got, ok := parsedMessageFromContext(ctx)
	if !ok {
		t.Fatalf("expected parsed message in context")
	}
	if got.ProposalID != "prop-5" {
		t.Fatalf("unexpected message: %+v", got)
	}

	if _, ok := parsedMessageFromContext(context.Background()); ok {
		t.Fatalf("expected no message in fresh context")
	}
}
