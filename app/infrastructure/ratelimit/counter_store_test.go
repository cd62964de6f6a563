package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounterStoreWindow(t *testing.T) {
	store := NewMemoryCounterStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, remaining, err := store.Increment(ctx, "comment:user:42", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.Equal(t, time.Minute, remaining)
	}

	// Counters are scoped per key.
	count, _, err := store.Increment(ctx, "like:user:42", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Window elapses, the counter resets.
	now = now.Add(time.Minute + time.Second)
	count, remaining, err := store.Increment(ctx, "comment:user:42", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, remaining)
}

func TestRedisCounterStoreWindow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisCounterStore(client)
	ctx := context.Background()

	count, remaining, err := store.Increment(ctx, "auth:ip:abc", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 15*time.Minute, remaining)

	count, remaining, err = store.Increment(ctx, "auth:ip:abc", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.LessOrEqual(t, remaining, 15*time.Minute)
	assert.Greater(t, remaining, time.Duration(0))

	// Window elapses, the key expires and the counter restarts.
	server.FastForward(15*time.Minute + time.Second)
	count, _, err = store.Increment(ctx, "auth:ip:abc", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCounterStoreIsolatesKeys(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisCounterStore(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := store.Increment(ctx, "comment:user:7", 5*time.Minute)
		require.NoError(t, err)
	}

	count, _, err := store.Increment(ctx, "global:user:7", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "buckets must not share counters")
}
