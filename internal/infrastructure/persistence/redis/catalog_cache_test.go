package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// newTestClient 连接本地Redis（REDIS_ADDR，默认localhost:6379），不可用时跳过
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis不可用，跳过: %v", err)
	}

	t.Cleanup(func() {
		client.Del(context.Background(), CatalogKey)
		client.Close()
	})
	return client
}

func TestCatalogCache_RoundTripKeepsOrder(t *testing.T) {
	cache := NewCatalogCache(newTestClient(t), time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Invalidate(ctx))

	_, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	books := []*book.Book{
		book.NewBook("10", "Samuel Beckett", "Molloy, Malone Dies, The Unnamable, the trilogy", nil),
		book.NewBook("2", "Hans Christian Andersen", "Fairy tales", map[string]string{"alice": "经典"}),
	}
	require.NoError(t, cache.Set(ctx, books))

	got, hit, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 2)
	assert.Equal(t, "10", got[0].ISBN)
	assert.Equal(t, "2", got[1].ISBN)
	assert.Equal(t, map[string]string{"alice": "经典"}, got[1].Reviews)

	require.NoError(t, cache.Invalidate(ctx))
	_, hit, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}
