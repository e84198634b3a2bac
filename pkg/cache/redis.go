package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPrefix namespaces every key written by RedisCache.
const redisPrefix = "goctave:blob:"

// RedisCache stores blobs in Redis, letting several hosts share one cache.
// Entries expire after the ttl given to Set.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the server described by url, e.g.
// "redis://localhost:6379/0". No request is made until first use.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Get retrieves the blob for digest. Entries that fail verification are
// deleted and reported as a miss.
func (c *RedisCache) Get(ctx context.Context, digest string) ([]byte, bool, error) {
	if err := checkDigest(digest); err != nil {
		return nil, false, err
	}
	data, err := c.client.Get(ctx, redisPrefix+digest).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if Digest(data) != digest {
		_ = c.client.Del(ctx, redisPrefix+digest).Err()
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data under digest with the given expiry.
func (c *RedisCache) Set(ctx context.Context, digest string, data []byte, ttl time.Duration) error {
	if err := verify(digest, data); err != nil {
		return err
	}
	return c.client.Set(ctx, redisPrefix+digest, data, ttl).Err()
}

// Delete removes the blob for digest.
func (c *RedisCache) Delete(ctx context.Context, digest string) error {
	return c.client.Del(ctx, redisPrefix+digest).Err()
}

// Clear removes every blob carrying the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
