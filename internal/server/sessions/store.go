// Package sessions provides TTL-backed storage for ephemeral session
// state. Two implementations are available: a Redis-backed store for
// deployments and an in-memory store for tests and single-node runs.
package sessions

import (
	"context"
	"time"
)

// Store is a key-value store for session claims with per-entry expiry.
//
// Save upserts the payload under key and resets its expiry to now+ttl.
// Get returns common.ErrorNotFound for absent keys and for entries whose
// TTL has elapsed; it never returns a logically expired entry.
// Invalidate removes the entry immediately regardless of remaining TTL.
// Operations on the same key are linearizable.
type Store interface {
	Save(ctx context.Context, key string, claims map[string]string, ttl time.Duration) error
	Get(ctx context.Context, key string) (map[string]string, error)
	Invalidate(ctx context.Context, key string) error
}
