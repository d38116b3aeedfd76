package cache

import (
	"context"
	"time"
)

// Counter is the subset of cache operations the HTTP boundary needs for
// fixed-window counting. Both the in-process and the Redis cache satisfy it.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var (
	_ Counter = (*MemoryCache)(nil)
	_ Counter = (*RedisCache)(nil)
)
