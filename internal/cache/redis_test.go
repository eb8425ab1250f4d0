package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, New(Options{}))
}

func TestNilCache_NoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.SetJSON(ctx, Key("stats"), map[string]int{"n": 1}))

	var dest map[string]int
	found, err := c.GetJSON(ctx, Key("stats"), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	n, err := c.Invalidate(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Close())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "lab4:stats", Key("stats"))
	assert.Equal(t, "lab4:restaurants:q=a&page=1", Key("restaurants", "q=a&page=1"))
}

func TestNewWithClient_DefaultTTL(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	c := NewWithClient(rdb, 0)
	assert.Equal(t, time.Minute, c.ttl)
}

func TestUnreachableRedis_ReturnsError(t *testing.T) {
	c := New(Options{Addr: "127.0.0.1:1", TTL: time.Second})
	require.NotNil(t, c)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var dest map[string]int
	_, err := c.GetJSON(ctx, Key("stats"), &dest)
	assert.Error(t, err)
}
