package queue

import (
	"reflect"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		ProposalID: "prop-1",
		RequestID:  "req-1",
		WebhookURL: "https://example.com/hook",
		Batch:      true,
		Documents: []MessageDocument{
			{FileName: "plan.pdf", StorageKey: "staging/prop-1/abc_plan.pdf", MimeType: "application/pdf", DocumentType: "business_plan"},
		},
		EnqueuedAt: "2026-02-01T12:00:00Z",
		Version:    1,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	decoded, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if !reflect.DeepEqual(msg, decoded) {
		t.Fatalf("round trip mismatch: %+v vs %+v", msg, decoded)
	}
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	if _, err := DecodeMessage([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
