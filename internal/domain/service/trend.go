package service

import "StockPredict/internal/domain/models"

// TrendPredictor forecasts the close one step past the end of a series.
type TrendPredictor interface {
	PredictNext(series models.Series) (float64, error)
}
