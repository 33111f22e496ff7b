package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for proposal analysis.
type Client interface {
	// Analyze runs the structured analysis prompt and returns the raw model
	// text. The response is expected to contain a JSON object but is not
	// guaranteed to; callers own the fallback.
	Analyze(ctx context.Context, prompt string) (string, error)
	// Complete runs a freeform prompt and returns the model text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Analyze returns ErrNotConfigured.
func (PlaceholderClient) Analyze(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
