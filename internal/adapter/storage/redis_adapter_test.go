package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestGetJSON_MissReturnsFalse(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client)
	ctx := context.Background()
	client.Del(ctx, "goshop-test:missing")

	var dest map[string]string
	ok, err := adapter.GetJSON(ctx, "goshop-test:missing", &dest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetJSON_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client)
	ctx := context.Background()
	key := "goshop-test:roundtrip"
	defer client.Del(ctx, key)

	value := map[string]int{"a": 1, "b": 2}
	require.NoError(t, adapter.SetJSON(ctx, key, value, time.Minute))

	var dest map[string]int
	ok, err := adapter.GetJSON(ctx, key, &dest)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, dest)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "value must expire")
}

func TestDelete_RemovesKeys(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client)
	ctx := context.Background()
	key := "goshop-test:delete"

	require.NoError(t, adapter.SetJSON(ctx, key, "value", time.Minute))
	require.NoError(t, adapter.Delete(ctx, key))

	var dest string
	ok, err := adapter.GetJSON(ctx, key, &dest)
	require.NoError(t, err)
	assert.False(t, ok)
}
