package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehi.app/anime-api-gateway/app/utils/metrics"
)

func newTestRedisCache(t *testing.T) (*RedisCacheService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	service := NewRedisCacheService("redis://"+server.Addr(), metrics.NewRecorder(nil))
	t.Cleanup(func() { service.Close() })
	return service, server
}

func TestGetOrSetMissPopulatesStoreWithTTL(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	calls := 0
	payload := map[string]any{"title": "One Piece", "episodes": 1100}
	raw, err := service.GetOrSet(ctx, "/meta/anilist/trending?page=2", 120*time.Second, func() (any, error) {
		calls++
		return payload, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "One Piece", got["title"])

	stored, err := server.Get("/meta/anilist/trending?page=2")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), stored)
	assert.Equal(t, 120*time.Second, server.TTL("/meta/anilist/trending?page=2"))
}

func TestGetOrSetHitShortCircuitsCompute(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, server.Set("k", `{"cached":true}`))

	raw, err := service.GetOrSet(ctx, "k", time.Minute, func() (any, error) {
		t.Fatal("compute must not run on a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cached":true}`, string(raw))
}

func TestGetOrSetFalsyStoredValuesRecompute(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	for _, stored := range []string{"null", "false", "0", `""`} {
		require.NoError(t, server.Set("falsy", stored))

		calls := 0
		raw, err := service.GetOrSet(ctx, "falsy", time.Minute, func() (any, error) {
			calls++
			return []string{"fresh"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls, "stored %s must be treated as a miss", stored)
		assert.JSONEq(t, `["fresh"]`, string(raw))
	}
}

func TestGetOrSetFalsyComputedResultNeverEffectivelyCached(t *testing.T) {
	service, _ := newTestRedisCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() (any, error) {
		calls++
		return false, nil
	}

	for i := 0; i < 3; i++ {
		raw, err := service.GetOrSet(ctx, "always-false", time.Minute, compute)
		require.NoError(t, err)
		assert.JSONEq(t, `false`, string(raw))
	}
	assert.Equal(t, 3, calls)
}

func TestGetOrSetCorruptEntryRecomputes(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, server.Set("corrupt", `{"broken":`))

	calls := 0
	raw, err := service.GetOrSet(ctx, "corrupt", time.Minute, func() (any, error) {
		calls++
		return map[string]string{"ok": "yes"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, `{"ok":"yes"}`, string(raw))

	stored, err := server.Get("corrupt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":"yes"}`, stored)
}

func TestGetOrSetComputeErrorPropagatesAndCachesNothing(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	boom := errors.New("provider exploded")
	_, err := service.GetOrSet(ctx, "err-key", time.Minute, func() (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, server.Exists("err-key"), "failures must not be negatively cached")
}

func TestGetOrSetDefaultsExpiry(t *testing.T) {
	service, server := newTestRedisCache(t)
	ctx := context.Background()

	_, err := service.GetOrSet(ctx, "default-ttl", 0, func() (any, error) {
		return "data", nil
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheExpiry, server.TTL("default-ttl"))
}

func TestSetAndGetRoundTrip(t *testing.T) {
	service, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, service.Set(ctx, "profile", map[string]string{"name": "riku"}, time.Minute))

	var dest map[string]string
	require.NoError(t, service.Get(ctx, "profile", &dest))
	assert.Equal(t, "riku", dest["name"])

	exists, err := service.Exists(ctx, "profile")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, service.Delete(ctx, "profile"))
}

func TestNoOpGetOrSetIsPassThrough(t *testing.T) {
	service := &NoOpCacheService{recorder: metrics.NewRecorder(nil)}
	ctx := context.Background()

	calls := 0
	raw, err := service.GetOrSet(ctx, "ignored", time.Minute, func() (any, error) {
		calls++
		return []int{1, 2, 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, `[1,2,3]`, string(raw))

	assert.Error(t, service.Get(ctx, "ignored", &struct{}{}))
	assert.NoError(t, service.Set(ctx, "ignored", "x", time.Minute))

	exists, err := service.Exists(ctx, "ignored")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIsFalsyJSON(t *testing.T) {
	falsy := [][]byte{[]byte("null"), []byte("false"), []byte("0"), []byte(`""`), []byte("not json")}
	for _, raw := range falsy {
		assert.True(t, isFalsyJSON(raw), "%s", raw)
	}

	truthy := [][]byte{[]byte("[]"), []byte("{}"), []byte("1"), []byte(`"x"`), []byte("true"), []byte(`[0]`)}
	for _, raw := range truthy {
		assert.False(t, isFalsyJSON(raw), "%s", raw)
	}
}
