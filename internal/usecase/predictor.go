package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPredict/internal/domain/models"
	drepo "StockPredict/internal/domain/repository"
	domsvc "StockPredict/internal/domain/service"
	"StockPredict/internal/services/analytics"
	"StockPredict/pkg/logger"
	"StockPredict/pkg/util"
)

var (
	ErrInvalidTicker = errors.New("ticker is required")
	ErrNoData        = errors.New("no data found")
	ErrComputation   = errors.New("computation fault")
	ErrEmptySeries   = analytics.ErrEmptySeries
)

// Prediction outcomes reported to metrics.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeFault  = "fault"
)

// FaultError is a failure inside predict or assemble. Its message is the
// cause's message; errors.Is(err, ErrComputation) holds.
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string { return e.Err.Error() }

func (e *FaultError) Unwrap() error { return e.Err }

func (e *FaultError) Is(target error) bool { return target == ErrComputation }

// Predictor runs fetch, forecast and assembly for one ticker.
type Predictor struct {
	fetcher   drepo.SeriesFetcher
	trend     domsvc.TrendPredictor
	assembler *Assembler
	metrics   drepo.Metrics
	log       *logger.Logger
}

func NewPredictor(f drepo.SeriesFetcher, t domsvc.TrendPredictor, a *Assembler, m drepo.Metrics, l *logger.Logger) *Predictor {
	if l == nil {
		l = logger.Nop()
	}
	return &Predictor{fetcher: f, trend: t, assembler: a, metrics: m, log: l}
}

// Predict returns the chart payload for ticker. Errors satisfy errors.Is
// against ErrInvalidTicker, ErrNoData or ErrComputation.
func (p *Predictor) Predict(ctx context.Context, ticker string) (*models.ResponsePayload, error) {
	ticker = util.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrInvalidTicker
	}
	start := time.Now()

	res := p.fetcher.Fetch(ctx, ticker)
	if res.Series.Empty() {
		p.observe(OutcomeNoData, start)
		return nil, fmt.Errorf("%w for ticker %s", ErrNoData, ticker)
	}

	payload, predicted, err := p.compute(ticker, res.Series)
	if err != nil {
		p.observe(OutcomeFault, start)
		p.log.Error("prediction failed",
			logger.String("ticker", ticker),
			logger.Int("points", res.Series.Len()),
			logger.Error(err),
		)
		return nil, err
	}

	p.observe(OutcomeOK, start)
	if latest, ok := res.Series.Last(); ok && p.metrics != nil {
		p.metrics.RecordForecastChange((predicted - latest.Close) / latest.Close)
	}
	p.log.Info("prediction served",
		logger.String("ticker", ticker),
		logger.String("provider", res.Provider),
		logger.Int("points", res.Series.Len()),
		logger.Float64("predicted", predicted),
	)
	return payload, nil
}

// compute converts both returned errors and panics into a FaultError.
func (p *Predictor) compute(ticker string, series models.Series) (payload *models.ResponsePayload, predicted float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = &FaultError{Err: fmt.Errorf("%v", r)}
		}
	}()

	predicted, err = p.trend.PredictNext(series)
	if err != nil {
		return nil, 0, &FaultError{Err: err}
	}
	payload, err = p.assembler.Assemble(ticker, series, predicted)
	if err != nil {
		return nil, 0, &FaultError{Err: err}
	}
	return payload, predicted, nil
}

func (p *Predictor) observe(outcome string, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordPrediction(outcome)
	p.metrics.RecordLatency("predict", time.Since(start).Seconds())
}
