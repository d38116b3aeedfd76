package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"StockPredict/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLimiter(t *testing.T) {
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	now := time.Date(2024, 3, 8, 12, 0, 10, 0, time.UTC)
	w := NewWindowLimiter(mc, 3, time.Minute)
	w.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := w.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := w.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(time.Minute)
	ok, err = w.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, ok, "next window starts fresh")
}

type brokenCounter struct{ cache.Counter }

func (brokenCounter) Increment(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestWindowLimiterSurfacesCounterErrors(t *testing.T) {
	w := NewWindowLimiter(brokenCounter{}, 3, time.Minute)

	_, err := w.Allow(context.Background(), "ip")
	assert.ErrorContains(t, err, "connection refused")
}

func TestWindowLimiterKeysAreIndependent(t *testing.T) {
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	w := NewWindowLimiter(mc, 1, time.Minute)
	ctx := context.Background()

	ok, _ := w.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	ok, _ = w.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
	ok, _ = w.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

func TestWindowLimiterMemoryStateIsBounded(t *testing.T) {
	mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(8))
	t.Cleanup(func() { _ = mc.Close() })
	w := NewWindowLimiter(mc, 1, time.Minute)

	for i := 0; i < 100; i++ {
		_, err := w.Allow(context.Background(), fmt.Sprintf("1.2.3.%d", i))
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, mc.Len(), 8)
}
