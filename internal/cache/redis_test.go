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

type cachedPage struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		rdb.Close()
	})
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, PostListKey(1, 10), cachedPage{Title: "feed", Count: 15}, PostListTTL)

	var got cachedPage
	require.True(t, GetJSON(ctx, PostListKey(1, 10), &got))
	assert.Equal(t, cachedPage{Title: "feed", Count: 15}, got)

	// A different page is a miss.
	assert.False(t, GetJSON(ctx, PostListKey(2, 10), &got))
}

func TestGetJSONExpiry(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, PostListKey(1, 10), cachedPage{Title: "feed"}, time.Minute)
	mr.FastForward(2 * time.Minute)

	var got cachedPage
	assert.False(t, GetJSON(ctx, PostListKey(1, 10), &got))
}

func TestInvalidatePrefix(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, PostListKey(1, 10), cachedPage{}, time.Minute)
	SetJSON(ctx, PostListKey(2, 10), cachedPage{}, time.Minute)
	SetJSON(ctx, "other:key", cachedPage{Title: "keep"}, time.Minute)

	InvalidatePrefix(ctx, PostListPrefix)

	var got cachedPage
	assert.False(t, GetJSON(ctx, PostListKey(1, 10), &got))
	assert.False(t, GetJSON(ctx, PostListKey(2, 10), &got))
	assert.True(t, GetJSON(ctx, "other:key", &got))
}

func TestCacheDisabledIsSafe(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	SetJSON(ctx, "k", cachedPage{}, time.Minute)
	InvalidatePrefix(ctx, "k")

	var got cachedPage
	assert.False(t, GetJSON(ctx, "k", &got))
}
