package usecase

import (
	"fmt"
	"math"

	"StockPredict/internal/domain/models"
	"StockPredict/pkg/util"
)

// DisplayOptions control how a prediction is rendered for the chart.
type DisplayOptions struct {
	// Factor is applied once to the latest and predicted close.
	Factor         float64
	CurrencySymbol string
	Window         int
}

// DefaultDisplayOptions mirrors the config defaults.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{Factor: 85, CurrencySymbol: "₹", Window: 30}
}

// Assembler shapes a series and its forecast into a ResponsePayload.
type Assembler struct {
	opts DisplayOptions
}

func NewAssembler(opts DisplayOptions) *Assembler {
	def := DefaultDisplayOptions()
	if opts.Factor <= 0 {
		opts.Factor = def.Factor
	}
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	return &Assembler{opts: opts}
}

// Assemble builds the payload. Closes in the window are raw, rounded to
// cents; only the two headline prices carry the display transform.
func (a *Assembler) Assemble(ticker string, series models.Series, predicted float64) (*models.ResponsePayload, error) {
	latest, ok := series.Last()
	if !ok {
		return nil, ErrEmptySeries
	}

	window := series.Tail(a.opts.Window)
	dates := make([]string, len(window))
	closes := make([]float64, len(window))
	for i, p := range window {
		dates[i] = util.FormatDate(p.Date)
		closes[i] = roundCents(p.Close)
	}

	return &models.ResponsePayload{
		Ticker:         ticker,
		LatestClose:    a.price(latest.Close),
		PredictedClose: a.price(predicted),
		Dates:          dates,
		Closes:         closes,
	}, nil
}

func (a *Assembler) price(v float64) string {
	s := fmt.Sprintf("%.2f", v*a.opts.Factor)
	if s == "-0.00" {
		s = "0.00"
	}
	return a.opts.CurrencySymbol + s
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
