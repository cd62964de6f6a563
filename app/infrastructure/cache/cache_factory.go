package cache

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"

	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/app/utils/metrics"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// NewCacheService selects the backend once at startup: Redis when
// REDIS_CONN_URL is set, otherwise the always-miss no-op service. A missing
// backend is a supported configuration, never a startup failure.
func NewCacheService(recorder *metrics.Recorder) CacheService {
	connURL := environment_variables.EnvironmentVariables.REDIS_CONN_URL
	if connURL == "" {
		logger.GetLogger().Info("REDIS_CONN_URL not set, response caching disabled")
		return &NoOpCacheService{recorder: recorder}
	}
	return NewRedisCacheService(connURL, recorder)
}

// NewRedsync builds a distributed mutex factory on the active cache backend.
// Returns nil when caching is disabled; callers treat that as "no lock
// needed" (single-replica deployment).
func NewRedsync(cacheService CacheService) *redsync.Redsync {
	redisCache, ok := cacheService.(*RedisCacheService)
	if !ok {
		return nil
	}
	return redsync.New(goredis.NewPool(redisCache.Client()))
}
