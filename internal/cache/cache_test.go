package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	r := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: r.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, "test:", ttl), r
}

func TestSetGetJSON(t *testing.T) {
	ctx := context.Background()
	c, r := newTestCache(t, time.Minute)

	type ref struct {
		Nome string `json:"nome"`
	}

	require.NoError(t, c.SetJSON(ctx, "categoria:Scale", ref{Nome: "Scale"}))
	assert.True(t, r.Exists("test:categoria:Scale"))

	var got ref
	require.NoError(t, c.GetJSON(ctx, "categoria:Scale", &got))
	assert.Equal(t, "Scale", got.Nome)
}

func TestGetJSONMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got map[string]any
	err := c.GetJSON(context.Background(), "nope", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetJSONExpires(t *testing.T) {
	ctx := context.Background()
	c, r := newTestCache(t, time.Minute)

	require.NoError(t, c.SetJSON(ctx, "k", "v"))
	r.FastForward(2 * time.Minute)

	var got string
	assert.ErrorIs(t, c.GetJSON(ctx, "k", &got), ErrCacheMiss)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, r := newTestCache(t, 0)

	require.NoError(t, c.SetJSON(ctx, "k", 1))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, r.Exists("test:k"))
}

func TestGetJSONBadPayload(t *testing.T) {
	c, r := newTestCache(t, 0)
	require.NoError(t, r.Set("test:k", "{not json"))

	var got map[string]any
	err := c.GetJSON(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
