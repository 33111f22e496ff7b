package queue

import "encoding/json"

// MessageDocument references one staged document in a queued request.
type MessageDocument struct {
	FileName     string `json:"fileName"`
	StorageKey   string `json:"storageKey"`
	MimeType     string `json:"mimeType"`
	DocumentType string `json:"documentType,omitempty"`
}

// Message is the payload sent to downstream queue consumers. Documents are
// staged in the object store before enqueueing; the worker extracts and
// analyzes them.
type Message struct {
	ProposalID string            `json:"proposalId"`
	RequestID  string            `json:"requestId"`
	WebhookURL string            `json:"webhookUrl"`
	Batch      bool              `json:"batch"`
	Documents  []MessageDocument `json:"documents"`
	EnqueuedAt string            `json:"enqueuedAt"`
	Version    int               `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
