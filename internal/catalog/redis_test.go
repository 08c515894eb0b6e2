package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache backed by it
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: domain.NumericID(1), Name: "Laptop", Price: 1299.99, Stock: domain.StockOf(3)},
		{ID: domain.StringID("sku-2"), Name: "Mouse", Price: 10},
	}
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleProducts()))
	assert.True(t, mr.Exists(cacheKey))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts(), got)
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	got, err := cache.Get(context.Background())

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey, "{broken"))

	_, err := cache.Get(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "unmarshal products failed")
}

func TestRedisCache_TTLWithJitter(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), sampleProducts()))

	ttl := mr.TTL(cacheKey)
	assert.GreaterOrEqual(t, ttl, 5*time.Minute)
	assert.Less(t, ttl, 6*time.Minute)

	mr.FastForward(7 * time.Minute)
	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, sampleProducts()))

	require.NoError(t, cache.Delete(ctx))

	assert.False(t, mr.Exists(cacheKey))
}

func TestRedisCache_ServerDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Get(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
