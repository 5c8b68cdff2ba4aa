package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResolveCache shields postgres from repeated lookups of keys that are
// known to yield nothing redirectable. Only misses are cached: a hit must
// always reach the store so the click increment lands exactly once.
type ResolveCache struct {
	client *redis.Client
}

func NewResolveCache(client *redis.Client) *ResolveCache {
	return &ResolveCache{client: client}
}

// MarkMiss remembers that key currently resolves to nothing the public
// endpoint would redirect to. The entry does not record whether the key
// is missing or inactive; the public surface never distinguishes either.
func (c *ResolveCache) MarkMiss(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Set(ctx, missKey(key), 1, ttl).Err()
}

func (c *ResolveCache) IsMiss(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, missKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Invalidate drops the miss entry for key. Called when a toggle or a
// fresh insert could make a cached miss stale.
func (c *ResolveCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, missKey(key)).Err()
}

func missKey(key string) string {
	return fmt.Sprintf("miss:%s", key)
}
