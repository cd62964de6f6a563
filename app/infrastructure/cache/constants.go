package cache

import "time"

const (
	// DefaultCacheExpiry applies when no override header is present.
	DefaultCacheExpiry = 3600 * time.Second

	// CacheExpiryHeaderName overrides the entry TTL for a single request.
	CacheExpiryHeaderName = "X-ANI-CACHE-EXPIRY"

	// HealthcheckLockKey serializes the public-deployment self-ping across
	// replicas.
	HealthcheckLockKey = "v1:healthcheck:lock"
)
