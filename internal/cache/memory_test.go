package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "analysis:abc", []byte(`{"ok":true}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	payload, found, err := store.Get(ctx, "analysis:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatalf("expected hit")
	}
	if !bytes.Equal(payload, []byte(`{"ok":true}`)) {
		t.Fatalf("payload = %q", payload)
	}
}

func TestMemoryStoreMissOnUnknownKey(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get(context.Background(), "analysis:missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatalf("expected miss")
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	current := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	if err := store.Set(context.Background(), "analysis:abc", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	current = current.Add(30 * time.Second)
	if _, found, _ := store.Get(context.Background(), "analysis:abc"); !found {
		t.Fatalf("expected hit before expiry")
	}

	current = current.Add(31 * time.Second)
	if _, found, _ := store.Get(context.Background(), "analysis:abc"); found {
		t.Fatalf("expected miss after expiry")
	}
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := []byte("original")
	if err := store.Set(ctx, "k", src, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, _, _ := store.Get(ctx, "k")
	if string(got) != "original" {
		t.Fatalf("stored payload mutated: %q", got)
	}
}

func TestContentCacheRoundTrip(t *testing.T) {
	type result struct {
		Summary string `json:"summary"`
		Score   int    `json:"score"`
	}

	cc := New(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	if ok := cc.Set(ctx, "fp1", result{Summary: "good", Score: 7}); !ok {
		t.Fatalf("Set returned false")
	}

	var got result
	if !cc.Get(ctx, "fp1", &got) {
		t.Fatalf("expected cache hit")
	}
	if got.Summary != "good" || got.Score != 7 {
		t.Fatalf("got %+v", got)
	}

	var miss result
	if cc.Get(ctx, "fp2", &miss) {
		t.Fatalf("expected cache miss for different fingerprint")
	}
}

func TestContentCacheNilIsNoop(t *testing.T) {
	var cc *ContentCache

	if cc.Enabled() {
		t.Fatalf("nil cache reports enabled")
	}
	if cc.Set(context.Background(), "fp", struct{}{}) {
		t.Fatalf("nil cache Set returned true")
	}
	var out struct{}
	if cc.Get(context.Background(), "fp", &out) {
		t.Fatalf("nil cache Get returned true")
	}
}
