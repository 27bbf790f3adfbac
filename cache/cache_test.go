package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`{"steps":[{"step":0,"value":75.2}]}`)
	require.NoError(t, c.Set(ctx, "k", value))
	value[0] = 'x'

	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"steps":[{"step":0,"value":75.2}]}`, string(got))

	got[1] = 'x'
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, byte('"'), again[1])
	assert.Equal(t, 1, c.Len())
}

func TestRedisCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), time.Minute)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, found, err := c.Get(ctx, "demandwise:predictions:1")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`{"steps":[{"step":0,"value":159},{"step":1,"value":0,"reason":"differenced series is identically zero"}]}`)
	require.NoError(t, c.Set(ctx, "demandwise:predictions:1", value))

	got, found, err := c.Get(ctx, "demandwise:predictions:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, got)
	assert.Equal(t, time.Minute, mr.TTL("demandwise:predictions:1"))

	mr.FastForward(2 * time.Minute)
	_, found, err = c.Get(ctx, "demandwise:predictions:1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_NoTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), 0)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	assert.Zero(t, mr.TTL("k"))
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client, time.Minute)
	defer c.Close()

	ctx := context.Background()
	_, found, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, c.Set(ctx, "k", []byte("1")))
	assert.Error(t, c.Ping(ctx))
}

var _ Cache = (*RedisCache)(nil)
var _ Cache = (*MemoryCache)(nil)
