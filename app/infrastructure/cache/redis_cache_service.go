package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/app/utils/metrics"
)

// RedisCacheService provides response caching backed by Redis.
type RedisCacheService struct {
	client   *redis.Client
	recorder *metrics.Recorder
}

// NewRedisCacheService connects to the given Redis URL. A failed connection
// test is logged but does not fail startup; individual operations degrade to
// misses instead.
func NewRedisCacheService(connURL string, recorder *metrics.Recorder) *RedisCacheService {
	opts, err := redis.ParseURL(connURL)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to parse Redis URL: %v", err))
		opts = &redis.Options{Addr: "localhost:6379"}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logger.GetLogger().Info("Successfully connected to Redis")
	}

	return &RedisCacheService{
		client:   client,
		recorder: recorder,
	}
}

// Set stores a value in Redis with an expiration time.
func (r *RedisCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, key, jsonValue, expiration).Err()
}

// Get retrieves a value from Redis.
func (r *RedisCacheService) Get(ctx context.Context, key string, dest any) error {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found: %s", key)
		}
		return fmt.Errorf("failed to get value: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// GetOrSet returns the cached payload under key when it holds a truthy JSON
// value. Anything else, a true miss, a corrupt entry or a stored falsy value,
// runs compute, caches its marshaled result with the given expiration and
// returns the fresh payload. A compute error propagates untouched and nothing
// is written (no negative caching). A failed cache write is logged, never
// surfaced.
func (r *RedisCacheService) GetOrSet(ctx context.Context, key string, expiration time.Duration, compute func() (any, error)) (json.RawMessage, error) {
	if expiration <= 0 {
		expiration = DefaultCacheExpiry
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err == nil && !isFalsyJSON(val) {
		r.recorder.ObserveCache(metrics.CacheHit)
		return json.RawMessage(val), nil
	}
	if err != nil && err != redis.Nil {
		logger.GetLogger().Info(fmt.Sprintf("Cache read failed for %s: %v", key, err))
	}

	r.recorder.ObserveCache(metrics.CacheMiss)
	value, err := compute()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal computed value: %w", err)
	}
	if err := r.client.Set(ctx, key, data, expiration).Err(); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to cache value for %s: %v", key, err))
	}
	return data, nil
}

// Delete removes a key from Redis without blocking on reclamation.
func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Unlink(ctx, key).Err()
}

// Exists checks if a key exists in Redis.
func (r *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return result > 0, nil
}

// Close closes the Redis connection.
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

// HealthCheck verifies Redis connectivity.
func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Client exposes the underlying connection for collaborators sharing the
// same Redis instance (rate-limit counters, redsync).
func (r *RedisCacheService) Client() *redis.Client {
	return r.client
}
