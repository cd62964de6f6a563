package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
)

const cacheConfigContextKey = "CACHE_CONFIG"

// CacheConfig is the per-request cache key and TTL pair derived from the
// URL. It lives only inside one request's context.
type CacheConfig struct {
	Key      string
	Duration time.Duration
}

// CacheConfigSetter derives the cache key from the request path with the API
// base prefix stripped, plus the raw query string when present. The TTL comes
// from the X-ANI-CACHE-EXPIRY header when it parses as positive integer
// seconds, else the default. Pure function of the request; must run before
// any handler that consults GetOrSet.
func CacheConfigSetter(prefixLength int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.URL.Path
		if prefixLength > 0 && prefixLength <= len(key) {
			key = key[prefixLength:]
		}
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			key += "?" + rawQuery
		}

		duration := cache.DefaultCacheExpiry
		if header := c.GetHeader(cache.CacheExpiryHeaderName); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
				duration = time.Duration(seconds) * time.Second
			}
		}

		c.Set(cacheConfigContextKey, CacheConfig{Key: key, Duration: duration})
		c.Next()
	}
}

// GetCacheConfig reads the derived config; the zero value means the deriver
// did not run for this route.
func GetCacheConfig(c *gin.Context) CacheConfig {
	v, ok := c.Get(cacheConfigContextKey)
	if !ok {
		return CacheConfig{Duration: cache.DefaultCacheExpiry}
	}
	cfg, ok := v.(CacheConfig)
	if !ok {
		return CacheConfig{Duration: cache.DefaultCacheExpiry}
	}
	return cfg
}
