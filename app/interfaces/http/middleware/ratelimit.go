package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/infrastructure/ratelimit"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/app/utils/metrics"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// RateLimitConfig describes one named bucket. Buckets never share counters:
// exhausting one leaves every other untouched for the same client.
type RateLimitConfig struct {
	Window  time.Duration
	Limit   int64
	Prefix  string
	Message string
}

// RateLimit builds the middleware for one bucket. Counter-store failures
// fail open: a broken Redis must not take the API down with it.
func RateLimit(cfg RateLimitConfig, store ratelimit.CounterStore, recorder *metrics.Recorder) gin.HandlerFunc {
	windowSeconds := int(math.Ceil(cfg.Window.Seconds()))
	policy := fmt.Sprintf("%d;w=%d", cfg.Limit, windowSeconds)

	return func(c *gin.Context) {
		key := ClientFingerprint(c, cfg.Prefix)

		count, resetIn, err := store.Increment(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.GetLogger().Error(fmt.Sprintf("rate limit counter failed for %s: %v", cfg.Prefix, err))
			recorder.ObserveLimiter(cfg.Prefix, metrics.LimiterFailedOpen)
			c.Next()
			return
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		resetSeconds := int(math.Ceil(resetIn.Seconds()))

		c.Writer.Header().Set("RateLimit-Policy", policy)
		c.Writer.Header().Set("RateLimit-Limit", strconv.FormatInt(cfg.Limit, 10))
		c.Writer.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Writer.Header().Set("RateLimit-Reset", strconv.Itoa(resetSeconds))

		if count > cfg.Limit {
			recorder.ObserveLimiter(cfg.Prefix, metrics.LimiterLimited)
			retryAfter := windowSeconds
			c.Writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.RateLimitExceededResponse{
				Status:     http.StatusTooManyRequests,
				Message:    cfg.Message,
				RetryAfter: retryAfter,
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		recorder.ObserveLimiter(cfg.Prefix, metrics.LimiterAllowed)
		c.Next()
	}
}

// RateLimiterRegistry holds the independent named buckets the route groups
// compose. A request may pass through zero, one or two of them.
type RateLimiterRegistry struct {
	Auth    gin.HandlerFunc
	Comment gin.HandlerFunc
	Replies gin.HandlerFunc
	Like    gin.HandlerFunc
	Global  gin.HandlerFunc
}

func NewRateLimiterRegistry(store ratelimit.CounterStore, recorder *metrics.Recorder) *RateLimiterRegistry {
	globalWindow := time.Duration(environment_variables.EnvironmentVariables.WINDOW_MS) * time.Millisecond
	if globalWindow <= 0 {
		globalWindow = 30 * time.Minute
	}
	globalLimit := int64(environment_variables.EnvironmentVariables.MAX_REQS)
	if globalLimit <= 0 {
		globalLimit = 100
	}

	return &RateLimiterRegistry{
		Auth: RateLimit(RateLimitConfig{
			Window:  15 * time.Minute,
			Limit:   5,
			Prefix:  "auth",
			Message: "Too many authentication attempts, please try again later.",
		}, store, recorder),
		Comment: RateLimit(RateLimitConfig{
			Window:  5 * time.Minute,
			Limit:   10,
			Prefix:  "comment",
			Message: "Too many comments, slow down.",
		}, store, recorder),
		Replies: RateLimit(RateLimitConfig{
			Window:  5 * time.Minute,
			Limit:   10,
			Prefix:  "replies",
			Message: "Too many replies, slow down.",
		}, store, recorder),
		Like: RateLimit(RateLimitConfig{
			Window:  2 * time.Minute,
			Limit:   10,
			Prefix:  "like",
			Message: "Too many reactions, slow down.",
		}, store, recorder),
		Global: RateLimit(RateLimitConfig{
			Window:  globalWindow,
			Limit:   globalLimit,
			Prefix:  "global",
			Message: "Too Many Requests 😵",
		}, store, recorder),
	}
}
