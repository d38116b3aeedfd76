package repository

import (
	"context"
	"errors"
	"time"

	"StockPredict/internal/domain/models"
	drepo "StockPredict/internal/domain/repository"
	"StockPredict/pkg/logger"
)

const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// SeriesRepository implements drepo.SeriesFetcher on top of a PriceProvider.
type SeriesRepository struct {
	provider drepo.PriceProvider
	timeout  time.Duration
	metrics  drepo.Metrics
	log      *logger.Logger
}

// NewSeriesRepository creates a fetcher; a zero timeout leaves the caller's deadline in charge.
func NewSeriesRepository(p drepo.PriceProvider, timeout time.Duration, m drepo.Metrics, l *logger.Logger) *SeriesRepository {
	if l == nil {
		l = logger.Nop()
	}
	return &SeriesRepository{provider: p, timeout: timeout, metrics: m, log: l}
}

// Fetch returns the series for ticker. It never fails: a provider error
// yields an empty series and is kept in FetchResult.Err.
func (r *SeriesRepository) Fetch(ctx context.Context, ticker string) models.FetchResult {
	start := time.Now()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res := models.FetchResult{Ticker: ticker, Provider: r.provider.Name()}
	series, err := r.provider.DailyCloses(ctx, ticker)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		res.Err = err
		r.log.Warn("series fetch failed",
			logger.String("ticker", ticker),
			logger.String("provider", res.Provider),
			logger.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			logger.Duration("latency_ms", elapsed),
			logger.Error(err),
		)
		r.record(res.Provider, OutcomeError, 0, elapsed)
	case series.Empty():
		r.log.Warn("series fetch returned no data",
			logger.String("ticker", ticker),
			logger.String("provider", res.Provider),
		)
		r.record(res.Provider, OutcomeEmpty, 0, elapsed)
	default:
		res.Series = series
		r.log.Debug("series fetched",
			logger.String("ticker", ticker),
			logger.String("provider", res.Provider),
			logger.Int("points", series.Len()),
			logger.Duration("latency_ms", elapsed),
		)
		r.record(res.Provider, OutcomeOK, series.Len(), elapsed)
	}
	return res
}

func (r *SeriesRepository) record(provider, outcome string, points int, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordFetch(provider, outcome, points)
	r.metrics.RecordLatency("fetch", elapsed.Seconds())
}

var _ drepo.SeriesFetcher = (*SeriesRepository)(nil)
