package cache

import (
	"context"
	"time"
)

// Backend stores raw bytes under fully qualified keys.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the backend's configured default TTL
//   - Negative: item never expires
type Backend interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Close() error
}
