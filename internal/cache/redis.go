// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MayankPrasher/draftly-backend/internal/middleware"
	"github.com/MayankPrasher/draftly-backend/internal/observability"

	"github.com/redis/go-redis/v9"
)

// PostListPrefix prefixes every cached post listing page. Writes that change
// the feed invalidate the whole prefix.
const PostListPrefix = "posts:list:"

// PostListTTL bounds staleness of cached listing pages.
const PostListTTL = 60 * time.Second

// PostListKey returns the cache key for one page of the public feed.
func PostListKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", PostListPrefix, page, limit)
}

var client *redis.Client

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis initializes the Redis client with the given address.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)
	client.AddHook(metricsHook{})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the Redis client. Intended for tests.
func SetClient(c *redis.Client) {
	client = c
}

// GetJSON reads the cached value at key into dest. Returns false on miss,
// on a disabled cache, or when the stored payload cannot be decoded.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	ctx, span := observability.TraceRedisOperation(ctx, "get")
	defer span.End()

	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores value at key with a TTL. Failures are silent, the cache
// is best effort.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, span := observability.TraceRedisOperation(ctx, "set")
	defer span.End()

	client.Set(ctx, key, raw, ttl)
}

// InvalidatePrefix deletes all keys matching prefix*. Used when a write makes
// cached listings stale.
func InvalidatePrefix(ctx context.Context, prefix string) {
	if client == nil {
		return
	}
	ctx, span := observability.TraceRedisOperation(ctx, "scan")
	defer span.End()

	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
