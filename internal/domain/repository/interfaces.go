package repository

import (
	"context"

	"StockPredict/internal/domain/models"
)

// PriceProvider is a market-data source returning adjusted daily bars for
// one trailing range. Implementations return an error for any failure,
// including an unknown ticker.
type PriceProvider interface {
	Name() string
	DailyCloses(ctx context.Context, ticker string) (models.Series, error)
}

// SeriesFetcher never fails: every provider failure is folded into an empty
// series with the reason kept on the result.
type SeriesFetcher interface {
	Fetch(ctx context.Context, ticker string) models.FetchResult
}

type Metrics interface {
	RecordFetch(provider, outcome string, points int)
	RecordPrediction(outcome string)
	RecordForecastChange(ratio float64)
	RecordLatency(op string, seconds float64)
}
