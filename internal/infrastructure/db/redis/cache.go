package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadCache implements ports.ReadCache on top of Redis. Values are stored as
// JSON under the given key.
type ReadCache struct {
	client *redis.Client
}

// NewReadCache creates a ReadCache wrapping the given Redis client.
func NewReadCache(client *redis.Client) *ReadCache {
	return &ReadCache{client: client}
}

// Get decodes the value stored at key into dst. It reports false on a miss.
func (c *ReadCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A value we cannot decode is treated as a miss and evicted.
		_ = c.client.Del(ctx, key).Err()
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value at key, expiring after ttl.
func (c *ReadCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// Delete evicts keys.
func (c *ReadCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
