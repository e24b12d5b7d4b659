package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss on empty cache")
	}

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "v", got, ok)
	}

	m.Invalidate(ctx, "k")
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestMemoryExpiresByClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	m.Set(ctx, SessionListKey, []byte("listing"), 30*time.Second)

	if _, ok := m.Get(ctx, SessionListKey); !ok {
		t.Fatal("expected hit before ttl")
	}

	now = now.Add(29 * time.Second)
	if _, ok := m.Get(ctx, SessionListKey); !ok {
		t.Fatal("expected hit just inside ttl")
	}

	now = now.Add(2 * time.Second)
	if _, ok := m.Get(ctx, SessionListKey); ok {
		t.Fatal("expected miss after ttl elapsed")
	}
	if m.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", m.Len())
	}
}

func TestMemoryIgnoresNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, "k", []byte("v"), 0)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected zero-ttl set to be a no-op")
	}
}
