package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"animehi.app/anime-api-gateway/app/utils/metrics"
)

// NoOpCacheService serves deployments without a cache backend. Writes are
// swallowed, reads always miss, and GetOrSet degrades to a plain pass-through
// around compute.
type NoOpCacheService struct {
	recorder *metrics.Recorder
}

// Set is a no-op implementation.
func (n *NoOpCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}

// Get always reports an absent key.
func (n *NoOpCacheService) Get(ctx context.Context, key string, dest any) error {
	return fmt.Errorf("key not found: %s", key)
}

// GetOrSet always runs compute and returns its marshaled result without
// touching any store.
func (n *NoOpCacheService) GetOrSet(ctx context.Context, key string, expiration time.Duration, compute func() (any, error)) (json.RawMessage, error) {
	n.recorder.ObserveCache(metrics.CacheBypass)
	value, err := compute()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal computed value: %w", err)
	}
	return data, nil
}

// Delete is a no-op implementation.
func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

// Exists always returns false.
func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// Close is a no-op implementation.
func (n *NoOpCacheService) Close() error {
	return nil
}

// HealthCheck always returns nil (healthy).
func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}
