package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Takudzwa22/shopease/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.Product{
		ID:    "507f1f77bcf86cd799439011",
		Name:  "Headphones",
		Price: 149.99,
	}
	data, err := json.Marshal(product)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey(product.ID), string(data)))

	result, err := cache.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", result.Name)
	assert.Equal(t, 149.99, result.Price)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("507f1f77bcf86cd799439011"), "{not json"))

	_, err := cache.Get(context.Background(), "507f1f77bcf86cd799439011")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSetGet_RoundTrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.Product{
		ID:    "507f1f77bcf86cd799439011",
		Name:  "Speaker",
		Price: 59.99,
		Stock: 20,
	}

	require.NoError(t, cache.Set(ctx, product.ID, product))

	result, err := cache.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, result.Name)
	assert.Equal(t, product.Stock, result.Stock)
}

func TestDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.Product{ID: "507f1f77bcf86cd799439011", Name: "Speaker"}
	require.NoError(t, cache.Set(ctx, product.ID, product))
	require.True(t, mr.Exists(cacheKey(product.ID)))

	require.NoError(t, cache.Delete(ctx, product.ID))
	assert.False(t, mr.Exists(cacheKey(product.ID)))
}
