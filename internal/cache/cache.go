package cache

import (
	"context"
	"encoding/json"
	"time"

	"proposal-analyzer/internal/shared/telemetry"
)

// keyPrefix namespaces analysis entries in the backing store.
const keyPrefix = "analysis:"

// DefaultTTL is how long cached analyses stay valid.
const DefaultTTL = 24 * time.Hour

// Store is the key-value backend contract. Implementations may fail; the
// ContentCache absorbs every failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// ContentCache is a best-effort cache keyed by content fingerprint. A nil
// receiver or nil store degrades every operation to a miss/no-op; caching is
// an optimization, never a correctness dependency.
type ContentCache struct {
	store Store
	ttl   time.Duration
}

// New constructs a ContentCache over the given store. A zero ttl falls back
// to DefaultTTL.
func New(store Store, ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{store: store, ttl: ttl}
}

// Get loads the cached value for a content fingerprint into out. Returns
// false on miss, expiry, backend failure, or corrupt payload.
func (c *ContentCache) Get(ctx context.Context, fingerprint string, out any) bool {
	if c == nil || c.store == nil {
		return false
	}
	payload, ok, err := c.store.Get(ctx, keyPrefix+fingerprint)
	if err != nil {
		telemetry.Warn("cache.get_failed", map[string]any{
			"fingerprint": shortKey(fingerprint),
			"error":       err.Error(),
		})
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		telemetry.Warn("cache.payload_corrupt", map[string]any{
			"fingerprint": shortKey(fingerprint),
			"error":       err.Error(),
		})
		return false
	}
	return true
}

// Set stores value under a content fingerprint, superseding any previous
// entry. Returns false (without raising) on any failure.
func (c *ContentCache) Set(ctx context.Context, fingerprint string, value any) bool {
	if c == nil || c.store == nil {
		return false
	}
	payload, err := json.Marshal(value)
	if err != nil {
		telemetry.Warn("cache.marshal_failed", map[string]any{
			"fingerprint": shortKey(fingerprint),
			"error":       err.Error(),
		})
		return false
	}
	if err := c.store.Set(ctx, keyPrefix+fingerprint, payload, c.ttl); err != nil {
		telemetry.Warn("cache.set_failed", map[string]any{
			"fingerprint": shortKey(fingerprint),
			"error":       err.Error(),
		})
		return false
	}
	return true
}

// Enabled reports whether a backing store is configured.
func (c *ContentCache) Enabled() bool {
	return c != nil && c.store != nil
}

func shortKey(fingerprint string) string {
	if len(fingerprint) > 16 {
		return fingerprint[:16]
	}
	return fingerprint
}
