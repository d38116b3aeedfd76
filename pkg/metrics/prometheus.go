package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches        *prometheus.CounterVec
	seriesLength   *prometheus.HistogramVec
	predictions    *prometheus.CounterVec
	forecastChange prometheus.Histogram
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpredict_fetch_total",
				Help: "Series fetches by provider and outcome (ok, empty, error)",
			},
			[]string{"provider", "outcome"},
		),
		seriesLength: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpredict_series_points",
				Help:    "Number of daily points returned per successful fetch",
				Buckets: []float64{1, 5, 30, 60, 120, 200, 252, 300},
			},
			[]string{"provider"},
		),
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpredict_predictions_total",
				Help: "Prediction pipeline results by outcome (ok, no_data, fault)",
			},
			[]string{"outcome"},
		),
		forecastChange: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockpredict_forecast_change_ratio",
				Help:    "Relative change of the predicted close over the latest close",
				Buckets: []float64{-0.1, -0.05, -0.02, -0.01, -0.005, 0, 0.005, 0.01, 0.02, 0.05, 0.1},
			},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpredict_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one fetch attempt and, for non-empty results, its length.
func (r *Recorder) RecordFetch(provider, outcome string, points int) {
	r.fetches.WithLabelValues(provider, outcome).Inc()
	if points > 0 {
		r.seriesLength.WithLabelValues(provider).Observe(float64(points))
	}
}

// RecordPrediction records the outcome of one pipeline run.
func (r *Recorder) RecordPrediction(outcome string) {
	r.predictions.WithLabelValues(outcome).Inc()
}

// RecordForecastChange observes (predicted-latest)/latest. Tickers are not
// labelled so series count stays fixed whatever callers request.
func (r *Recorder) RecordForecastChange(ratio float64) {
	r.forecastChange.Observe(ratio)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
