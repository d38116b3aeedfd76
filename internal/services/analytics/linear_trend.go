package analytics

import (
	"errors"
	"fmt"
	"math"

	"StockPredict/internal/domain/models"
	domsvc "StockPredict/internal/domain/service"
	"StockPredict/internal/services/features"
)

// ErrEmptySeries is returned when a forecast is requested for no data.
var ErrEmptySeries = errors.New("analytics: empty series")

// LinearTrend fits close against day index over the whole series and
// extrapolates one day past the last observation.
type LinearTrend struct{}

func NewLinearTrend() *LinearTrend { return &LinearTrend{} }

func (LinearTrend) PredictNext(series models.Series) (float64, error) {
	if series.Empty() {
		return 0, ErrEmptySeries
	}

	line, err := features.FitIndexLine(series.Closes())
	if err != nil {
		return 0, fmt.Errorf("fit trend: %w", err)
	}

	next := line.At(float64(series.Len()))
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return 0, fmt.Errorf("fit trend: %w: forecast %v", features.ErrNonFinite, next)
	}
	return next, nil
}

var _ domsvc.TrendPredictor = (*LinearTrend)(nil)
