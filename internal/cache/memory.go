package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the payload for key if present and unexpired.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(entry.payload))
	copy(out, entry.payload)
	return out, true, nil
}

// Set stores payload under key, superseding any previous entry.
func (s *MemoryStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		payload:   stored,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
