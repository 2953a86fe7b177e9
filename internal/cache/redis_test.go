package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

// setupTestRedis creates a miniredis server and returns a RedisCartCache instance.
func setupTestRedis(t *testing.T) (*RedisCartCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewRedisCartCache(client), mr, cleanup
}

func TestGet_Success(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &models.Cart{
		UserID: "user123",
		Items: []models.CartItem{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 3},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey("user123"), string(cartJSON))

	result, err := c.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "prod-1", result.Items[0].ProductID)
	assert.Equal(t, 2, result.Items[0].Quantity)
}

func TestGet_Miss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &models.Cart{
		GuestID: "guest-abc",
		Items:   []models.CartItem{{ProductID: "prod-9", Quantity: 1}},
	}

	require.NoError(t, c.Set(ctx, "guest-abc", cart))
	assert.True(t, mr.Exists(cacheKey("guest-abc")))

	result, err := c.Get(ctx, "guest-abc")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, result.Items)
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := &models.Cart{UserID: "user-ttl"}
	require.NoError(t, c.Set(context.Background(), "user-ttl", cart))

	ttl := mr.TTL(cacheKey("user-ttl"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "user123", &models.Cart{UserID: "user123"}))
	require.NoError(t, c.Delete(ctx, "user123"))
	assert.False(t, mr.Exists(cacheKey("user123")))

	_, err := c.Get(ctx, "user123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
