package ratelimit

import (
	"context"
	"fmt"
	"time"

	"StockPredict/pkg/cache"
	"StockPredict/pkg/http/middleware"
)

// WindowLimiter counts requests per key in fixed windows on a cache.Counter.
// On a MemoryCache the key set is bounded by its LRU size; on Redis the
// limit is shared by every replica.
type WindowLimiter struct {
	counter cache.Counter
	limit   int64
	window  time.Duration
	now     func() time.Time
}

func NewWindowLimiter(counter cache.Counter, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		now:     time.Now,
	}
}

func (w *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := w.now().Truncate(w.window).Unix()
	k := fmt.Sprintf("ratelimit:%s:%d", key, slot)

	n, err := w.counter.Increment(ctx, k)
	if err != nil {
		return false, fmt.Errorf("ratelimit increment: %w", err)
	}
	if n == 1 {
		// first hit in this window owns the expiry
		if _, err := w.counter.Expire(ctx, k, 2*w.window); err != nil {
			return false, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return n <= w.limit, nil
}

var _ middleware.Limiter = (*WindowLimiter)(nil)
