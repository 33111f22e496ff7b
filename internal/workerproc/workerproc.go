package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"proposal-analyzer/internal/analyses"
	"proposal-analyzer/internal/bootstrap"
	"proposal-analyzer/internal/extract"
	"proposal-analyzer/internal/queue"
	"proposal-analyzer/internal/scoring"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingProposalID indicates a message missing the proposal id.
type ErrMissingProposalID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingProposalID) Error() string { return "missing proposal id" }

// ErrNoDocuments indicates a message without staged documents.
type ErrNoDocuments struct {
	ProposalID string
	RequestID  string
}

func (e ErrNoDocuments) Error() string { return "message has no documents" }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.ProposalID) == "" {
		return msg, meta, ErrMissingProposalID{Meta: meta, RequestID: msg.RequestID}
	}
	if len(msg.Documents) == 0 {
		return msg, meta, ErrNoDocuments{ProposalID: msg.ProposalID, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses a queued request, extracts its staged documents, and
// runs the analysis to completion. The orchestrator delivers the webhook on
// both success and failure, so a non-nil return here means the message
// itself was unusable, not that the analysis failed.
func HandleMessage(ctx context.Context, app *bootstrap.App, body string) error {
	if app == nil || app.AnalysisService == nil {
		return errors.New("analysis service not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(msg.ProposalID) == "" {
		return ErrMissingProposalID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	ctxWithRequest := analyses.WithRequestID(ctx, msg.RequestID)

	if msg.Batch || len(msg.Documents) > 1 {
		req := analyses.BatchRequest{
			ProposalID: msg.ProposalID,
			WebhookURL: msg.WebhookURL,
		}
		for _, doc := range msg.Documents {
			content, err := loadDocument(ctxWithRequest, app, doc)
			if err != nil {
				// The orchestrator isolates unreadable documents the
				// same way it isolates failed inference calls.
				content = ""
			}
			req.Documents = append(req.Documents, analyses.BatchDocument{
				FileName:     doc.FileName,
				Content:      content,
				DocumentType: scoring.DocumentType(doc.DocumentType),
			})
			req.StagedKeys = append(req.StagedKeys, doc.StorageKey)
		}
		app.AnalysisService.RunBatch(ctxWithRequest, req)
		return nil
	}

	doc := msg.Documents[0]
	content, err := loadDocument(ctxWithRequest, app, doc)
	if err != nil {
		content = ""
	}
	app.AnalysisService.Run(ctxWithRequest, analyses.Request{
		ProposalID:   msg.ProposalID,
		Content:      content,
		DocumentType: scoring.DocumentType(doc.DocumentType),
		WebhookURL:   msg.WebhookURL,
		StagedKey:    doc.StorageKey,
	})
	return nil
}

func loadDocument(ctx context.Context, app *bootstrap.App, doc queue.MessageDocument) (string, error) {
	if app.Store == nil {
		return "", errors.New("object store not configured")
	}
	return extract.ExtractText(ctx, app.Store, doc.StorageKey, doc.MimeType, doc.FileName)
}
