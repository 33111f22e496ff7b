package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGStore is a Postgres-backed Store.
type PGStore struct {
	DB  *sql.DB
	now func() time.Time
}

// NewPGStore constructs a Postgres store over the given connection.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db, now: time.Now}
}

// Get returns the payload for key if present and unexpired. Expired rows are
// removed best-effort.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT payload, expires_at FROM analysis_cache WHERE cache_key = $1`

	var payload []byte
	var expiresAt time.Time
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get key=%s: %w", key, err)
	}
	if s.nowFunc().After(expiresAt) {
		_, _ = s.DB.ExecContext(ctx, `DELETE FROM analysis_cache WHERE cache_key = $1`, key)
		return nil, false, nil
	}
	return payload, true, nil
}

// Set upserts the payload under key; a later write supersedes the previous
// entry rather than merging with it.
func (s *PGStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	const query = `
		INSERT INTO analysis_cache (cache_key, payload, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cache_key)
		DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`

	now := s.nowFunc()
	if _, err := s.DB.ExecContext(ctx, query, key, payload, now.Add(ttl), now); err != nil {
		return fmt.Errorf("cache set key=%s: %w", key, err)
	}
	return nil
}

func (s *PGStore) nowFunc() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

var _ Store = (*PGStore)(nil)
