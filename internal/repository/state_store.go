package repository

import (
	"context"
	"time"
)

// StateStore abstracts the expiring key-value store that holds all
// coordination state. Every entry carries an explicit TTL; the store is the
// single source of truth and an entry's lifecycle is its TTL.
// Implementations: Redis (production) or in-memory (tests / single-instance).
type StateStore interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX creates the entry only if the key is absent, as a single atomic
	// remote operation. It is the sole mutual-exclusion primitive in the
	// system; a get-then-set emulation would break deduplication.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}
