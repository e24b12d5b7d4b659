package cache

import (
	"context"
	"time"
)

// SessionListKey is the cache key for the public session listing, the one
// read-heavy endpoint worth caching. Any session mutation must invalidate it.
const SessionListKey = "sessions:public"

// Cache is a byte-oriented TTL cache. It is never authoritative: a miss or a
// stale entry only costs an extra Firestore read.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}
