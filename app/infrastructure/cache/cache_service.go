package cache

import (
	"context"
	"encoding/json"
	"time"
)

// CacheService defines the interface for response cache operations.
type CacheService interface {
	// Set stores a value in cache with an expiration time.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest.
	Get(ctx context.Context, key string, dest any) error

	// GetOrSet returns the cached payload for key, or runs compute, stores
	// its result with the given expiration and returns the fresh payload.
	GetOrSet(ctx context.Context, key string, expiration time.Duration, compute func() (any, error)) (json.RawMessage, error)

	// Delete removes a key from cache.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in cache.
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection.
	Close() error

	// HealthCheck verifies cache connectivity.
	HealthCheck(ctx context.Context) error
}

// isFalsyJSON reports whether a stored payload deserializes to a falsy JSON
// value (null, false, 0, "") or does not deserialize at all. Such payloads
// are indistinguishable from an absent entry, so a legitimately empty result
// is recomputed on every request. Accepted limitation, kept from the
// service's original behavior: callers must not rely on falsy results being
// cached.
func isFalsyJSON(raw []byte) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case float64:
		return value == 0
	case string:
		return value == ""
	default:
		return false
	}
}
