package di

import (
	"fmt"

	"StockPredict/internal/domain/repository"
	domsvc "StockPredict/internal/domain/service"
	"StockPredict/internal/handler/api"
	internalrepo "StockPredict/internal/repository"
	"StockPredict/internal/service/ratelimit"
	"StockPredict/internal/service/twelvedata"
	"StockPredict/internal/service/yahoo"
	"StockPredict/internal/services/analytics"
	"StockPredict/internal/usecase"
	"StockPredict/pkg/cache"
	"StockPredict/pkg/config"
	xhttp "StockPredict/pkg/http"
	"StockPredict/pkg/http/middleware"
	applogger "StockPredict/pkg/logger"
	"StockPredict/pkg/metrics"
	"StockPredict/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// memoryLimiterKeys bounds the in-process limiter's per-client state.
const memoryLimiterKeys = 10000

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvidePriceProvider selects the market-data source named in config.
func ProvidePriceProvider(cfg *config.Config) repository.PriceProvider {
	p := cfg.Provider
	if p.Name == config.ProviderTwelveData {
		return twelvedata.New(twelvedata.Options{
			APIKey:         p.APIKey,
			BaseURL:        p.BaseURL,
			Range:          p.Range,
			Timeout:        p.Timeout,
			RequestsPerSec: p.RequestsPerSec,
		})
	}
	return yahoo.New(yahoo.Options{
		BaseURL:        p.BaseURL,
		Range:          p.Range,
		Timeout:        p.Timeout,
		RequestsPerSec: p.RequestsPerSec,
	})
}

// ProvideSeriesFetcher wraps the provider with timeout, logging and metrics.
func ProvideSeriesFetcher(
	p repository.PriceProvider,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) repository.SeriesFetcher {
	return internalrepo.NewSeriesRepository(p, cfg.Provider.Timeout, m, l)
}

// ProvideTrendPredictor creates the linear trend model.
func ProvideTrendPredictor() domsvc.TrendPredictor {
	return analytics.NewLinearTrend()
}

// ProvideAssembler creates the response assembler from display settings.
func ProvideAssembler(cfg *config.Config) *usecase.Assembler {
	return usecase.NewAssembler(usecase.DisplayOptions{
		Factor:         cfg.Display.Factor,
		CurrencySymbol: cfg.Display.CurrencySymbol,
		Window:         cfg.Display.Window,
	})
}

// ProvidePredictor creates the prediction use case.
func ProvidePredictor(
	f repository.SeriesFetcher,
	t domsvc.TrendPredictor,
	a *usecase.Assembler,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Predictor {
	return usecase.NewPredictor(f, t, a, m, l)
}

// ProvideHTTPHandler creates the Echo handler for /predict.
func ProvideHTTPHandler(l *applogger.Logger, p *usecase.Predictor) xhttp.Handler {
	return api.NewPredictEchoHandler(l, p)
}

// ProvideLimiter returns the inbound rate limiter, or nil when disabled.
// With Redis enabled the counters are shared across replicas.
func ProvideLimiter(cfg *config.Config, l *applogger.Logger) (middleware.Limiter, func(), error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil, func() {}, nil
	}
	if !cfg.Redis.Enabled {
		mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(memoryLimiterKeys))
		l.Info("rate limiting in-process", applogger.Int("limit", rl.Limit), applogger.Duration("window_ms", rl.Window))
		return ratelimit.NewWindowLimiter(mc, rl.Limit, rl.Window), func() { _ = mc.Close() }, nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	l.Info("rate limiting via redis",
		applogger.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)),
		applogger.Int("limit", rl.Limit),
	)
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return ratelimit.NewWindowLimiter(rc, rl.Limit, rl.Window), cleanup, nil
}

// ProvideHTTPServer creates the Echo server with middleware.
func ProvideHTTPServer(
	cfg *config.Config,
	h xhttp.Handler,
	lim middleware.Limiter,
	l *applogger.Logger,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, cfg.Server.SlowThreshold),
		xhttp.WithLogger(l),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
	}
	if lim != nil {
		opts = append(opts, xhttp.WithRateLimiter(lim))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}
