package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehi.app/anime-api-gateway/app/infrastructure/ratelimit"
	"animehi.app/anime-api-gateway/app/interfaces/http/responses"
)

type failingCounterStore struct{}

func (failingCounterStore) Increment(_ context.Context, _ string, _ time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis unreachable")
}

func newLimitedRouter(cfg RateLimitConfig, store ratelimit.CounterStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", RateLimit(cfg, store, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func doRequest(router *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	store := ratelimit.NewMemoryCounterStore()
	router := newLimitedRouter(RateLimitConfig{
		Window: time.Minute, Limit: 3, Prefix: "test", Message: "slow down",
	}, store)

	for i := 0; i < 3; i++ {
		rec := doRequest(router, nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := doRequest(router, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitHeaders(t *testing.T) {
	store := ratelimit.NewMemoryCounterStore()
	router := newLimitedRouter(RateLimitConfig{
		Window: time.Minute, Limit: 3, Prefix: "test", Message: "slow down",
	}, store)

	rec := doRequest(router, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "2", rec.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "3;w=60", rec.Header().Get("RateLimit-Policy"))
	assert.NotEmpty(t, rec.Header().Get("RateLimit-Reset"))
}

func TestRateLimitExceededBody(t *testing.T) {
	store := ratelimit.NewMemoryCounterStore()
	router := newLimitedRouter(RateLimitConfig{
		Window: time.Minute, Limit: 1, Prefix: "test", Message: "slow down",
	}, store)

	doRequest(router, nil)
	rec := doRequest(router, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))

	var body responses.RateLimitExceededResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
	assert.Equal(t, "slow down", body.Message)
	assert.Equal(t, 60, body.RetryAfter)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestRateLimitIsolatesClients(t *testing.T) {
	store := ratelimit.NewMemoryCounterStore()
	router := newLimitedRouter(RateLimitConfig{
		Window: time.Minute, Limit: 1, Prefix: "test", Message: "slow down",
	}, store)

	first := map[string]string{"X-Forwarded-For": "10.0.0.1", "User-Agent": "ua-one"}
	second := map[string]string{"X-Forwarded-For": "10.0.0.2", "User-Agent": "ua-two"}

	require.Equal(t, http.StatusOK, doRequest(router, first).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, first).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, second).Code)
}

func TestRateLimitBucketsAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := ratelimit.NewMemoryCounterStore()
	router := gin.New()
	router.GET("/a", RateLimit(RateLimitConfig{Window: time.Minute, Limit: 1, Prefix: "a", Message: "a"}, store, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/b", RateLimit(RateLimitConfig{Window: time.Minute, Limit: 1, Prefix: "b", Message: "b"}, store, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, get("/a"))
	require.Equal(t, http.StatusTooManyRequests, get("/a"))
	assert.Equal(t, http.StatusOK, get("/b"))
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	router := newLimitedRouter(RateLimitConfig{
		Window: time.Minute, Limit: 1, Prefix: "test", Message: "slow down",
	}, failingCounterStore{})

	for i := 0; i < 5; i++ {
		rec := doRequest(router, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRegistryBucketBudgets(t *testing.T) {
	cases := []struct {
		name   string
		pick   func(r *RateLimiterRegistry) gin.HandlerFunc
		limit  int
		policy string
	}{
		{"auth", func(r *RateLimiterRegistry) gin.HandlerFunc { return r.Auth }, 5, "5;w=900"},
		{"comment", func(r *RateLimiterRegistry) gin.HandlerFunc { return r.Comment }, 10, "10;w=300"},
		{"replies", func(r *RateLimiterRegistry) gin.HandlerFunc { return r.Replies }, 10, "10;w=300"},
		{"like", func(r *RateLimiterRegistry) gin.HandlerFunc { return r.Like }, 10, "10;w=120"},
		{"global", func(r *RateLimiterRegistry) gin.HandlerFunc { return r.Global }, 100, "100;w=1800"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			registry := NewRateLimiterRegistry(ratelimit.NewMemoryCounterStore(), nil)
			router := gin.New()
			router.GET("/ping", tc.pick(registry), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			var rec *httptest.ResponseRecorder
			for i := 0; i < tc.limit; i++ {
				rec = doRequest(router, nil)
				require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
			}
			assert.Equal(t, tc.policy, rec.Header().Get("RateLimit-Policy"))

			rec = doRequest(router, nil)
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		})
	}
}
