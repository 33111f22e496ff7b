package object

import (
	"context"
	"io"
)

// ObjectStore stages uploaded proposal documents between submission and
// analysis. Staged objects are short-lived: the orchestrator deletes them
// once the request finishes.
type ObjectStore interface {
	Save(ctx context.Context, proposalID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
