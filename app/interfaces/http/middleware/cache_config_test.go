package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
)

func deriveConfig(t *testing.T, target string, headers map[string]string) CacheConfig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got CacheConfig
	router := gin.New()
	api := router.Group("/api", CacheConfigSetter(len("/api")))
	api.GET("/*any", func(c *gin.Context) {
		got = GetCacheConfig(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return got
}

func TestCacheConfigKeyStripsBasePrefix(t *testing.T) {
	cfg := deriveConfig(t, "/api/meta/anilist/trending?page=2", nil)
	assert.Equal(t, "/meta/anilist/trending?page=2", cfg.Key)
	assert.Equal(t, cache.DefaultCacheExpiry, cfg.Duration)
}

func TestCacheConfigKeyWithoutQuery(t *testing.T) {
	cfg := deriveConfig(t, "/api/anime/zoro/top-airing", nil)
	assert.Equal(t, "/anime/zoro/top-airing", cfg.Key)
}

func TestCacheConfigSamePathDifferentQueryDistinctKeys(t *testing.T) {
	one := deriveConfig(t, "/api/meta/anilist/trending?page=1", nil)
	two := deriveConfig(t, "/api/meta/anilist/trending?page=2", nil)
	assert.NotEqual(t, one.Key, two.Key)
}

func TestCacheConfigExpiryHeaderOverride(t *testing.T) {
	cfg := deriveConfig(t, "/api/meta/anilist/trending", map[string]string{
		cache.CacheExpiryHeaderName: "120",
	})
	assert.Equal(t, 120*time.Second, cfg.Duration)
}

func TestCacheConfigInvalidExpiryHeaderFallsBack(t *testing.T) {
	for _, header := range []string{"abc", "-5", "0", "1.5"} {
		cfg := deriveConfig(t, "/api/meta/anilist/trending", map[string]string{
			cache.CacheExpiryHeaderName: header,
		})
		assert.Equal(t, cache.DefaultCacheExpiry, cfg.Duration, "header %q", header)
	}
}

func TestGetCacheConfigWithoutSetter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	cfg := GetCacheConfig(c)
	assert.Empty(t, cfg.Key)
	assert.Equal(t, cache.DefaultCacheExpiry, cfg.Duration)
}
