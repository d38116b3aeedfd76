package di

import (
	"context"
	"testing"

	"StockPredict/internal/service/ratelimit"
	"StockPredict/internal/service/twelvedata"
	"StockPredict/internal/service/yahoo"
	"StockPredict/pkg/config"
	applogger "StockPredict/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideLimiterDisabled(t *testing.T) {
	lim, cleanup, err := ProvideLimiter(config.Default(), applogger.Nop())
	require.NoError(t, err)
	assert.Nil(t, lim)
	cleanup()
}

func TestProvideLimiterInProcess(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Limit = 1

	lim, cleanup, err := ProvideLimiter(cfg, applogger.Nop())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &ratelimit.WindowLimiter{}, lim)

	ok, err := lim.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = lim.Allow(context.Background(), "10.0.0.1")
	assert.False(t, ok)
}

func TestProvidePriceProvider(t *testing.T) {
	cfg := config.Default()
	assert.IsType(t, &yahoo.Client{}, ProvidePriceProvider(cfg))

	cfg.Provider.Name = config.ProviderTwelveData
	cfg.Provider.APIKey = "k"
	assert.IsType(t, &twelvedata.Client{}, ProvidePriceProvider(cfg))
}
