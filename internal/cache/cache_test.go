// internal/cache/cache_test.go
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netflix100plus/admin-console/internal/config"
)

type cachedStats struct {
	TotalUsers int `json:"totalUsers"`
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stats", cachedStats{TotalUsers: 12}, 5*time.Minute))

	var got cachedStats
	ok, err := c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, got.TotalUsers)

	now = now.Add(5 * time.Minute)
	ok, err = c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a"))

	var v int
	ok, _ := c.Get(ctx, "a", &v)
	assert.False(t, ok)
	ok, _ = c.Get(ctx, "b", &v)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, config.RedisConfig{Addr: addr}, "admin-console-test:")
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "stats", cachedStats{TotalUsers: 3}, time.Minute))
	var got cachedStats
	ok, err := c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got.TotalUsers)

	require.NoError(t, c.Delete(ctx, "stats"))
	ok, err = c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
