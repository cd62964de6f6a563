package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// CounterStore tracks request counts per fingerprint inside a fixed window.
// Increment must be atomic per key even under concurrent requests from the
// same fingerprint.
type CounterStore interface {
	// Increment adds one hit for key and returns the new count plus the time
	// remaining until the window resets. The first hit opens a window of the
	// given length.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// NewCounterStore shares the cache backend selection: Redis when available,
// otherwise an in-process store. Multi-replica deployments wanting shared
// counters must configure REDIS_CONN_URL.
func NewCounterStore(cacheService cache.CacheService) CounterStore {
	if redisCache, ok := cacheService.(*cache.RedisCacheService); ok {
		return &RedisCounterStore{client: redisCache.Client()}
	}
	logger.GetLogger().Info("REDIS_CONN_URL not set, rate-limit counters held in process")
	if environment_variables.EnvironmentVariables.HOSTNAME != "" {
		logger.GetLogger().Warn("public deployment without Redis: rate limits are per replica")
	}
	return NewMemoryCounterStore()
}

// RedisCounterStore delegates atomicity to Redis' native INCR.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count := incr.Val()
	remaining := ttl.Val()
	// PTTL reports a negative duration on a fresh key; open the window.
	if remaining < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
		remaining = window
	}
	return count, remaining, nil
}

type memoryWindow struct {
	count     int64
	expiresAt time.Time
}

// MemoryCounterStore is the in-process fallback used by personal deployments
// and tests.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (s *MemoryCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.After(w.expiresAt) {
		w = &memoryWindow{expiresAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.expiresAt.Sub(now), nil
}
