package usecase

import (
	"math"
	"testing"
	"time"

	"StockPredict/internal/domain/models"
	"StockPredict/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tradingDays builds n weekday points starting 2023-03-08 with closes from f.
func tradingDays(n int, f func(i int) float64) models.Series {
	out := make(models.Series, 0, n)
	d := time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC)
	for len(out) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, models.PricePoint{Date: d, Close: f(len(out))})
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

func TestAssembleWindowShorterThanSeries(t *testing.T) {
	series := tradingDays(45, func(i int) float64 { return 100 + float64(i) })
	a := NewAssembler(DefaultDisplayOptions())

	p, err := a.Assemble("AAPL", series, 145)
	require.NoError(t, err)

	require.Len(t, p.Dates, 30)
	require.Len(t, p.Closes, 30)
	assert.Equal(t, 115.0, p.Closes[0])
	assert.Equal(t, 144.0, p.Closes[29])
	assert.Equal(t, util.FormatDate(series[15].Date), p.Dates[0])
	assert.Equal(t, util.FormatDate(series[44].Date), p.Dates[29])
	for i := 1; i < len(p.Dates); i++ {
		assert.Less(t, p.Dates[i-1], p.Dates[i])
	}
}

func TestAssembleWindowLongerThanSeries(t *testing.T) {
	series := tradingDays(3, func(i int) float64 { return 10 })

	p, err := NewAssembler(DefaultDisplayOptions()).Assemble("X", series, 10)
	require.NoError(t, err)
	assert.Len(t, p.Dates, 3)
	assert.Len(t, p.Closes, 3)
}

func TestAssembleFormatsHeadlinePrices(t *testing.T) {
	series := tradingDays(2, func(i int) float64 { return []float64{189.123, 189.98}[i] })

	p, err := NewAssembler(DefaultDisplayOptions()).Assemble("AAPL", series, 190.5)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", p.Ticker)
	assert.Equal(t, "₹16148.30", p.LatestClose)
	assert.Equal(t, "₹16192.50", p.PredictedClose)
	// window closes are not transformed
	assert.Equal(t, []float64{189.12, 189.98}, p.Closes)
}

func TestAssembleCustomDisplay(t *testing.T) {
	series := tradingDays(5, func(i int) float64 { return 2 })
	a := NewAssembler(DisplayOptions{Factor: 1, CurrencySymbol: "$", Window: 2})

	p, err := a.Assemble("T", series, 3)
	require.NoError(t, err)
	assert.Equal(t, "$2.00", p.LatestClose)
	assert.Equal(t, "$3.00", p.PredictedClose)
	assert.Len(t, p.Dates, 2)
}

func TestAssembleDatesRoundTrip(t *testing.T) {
	series := tradingDays(10, func(i int) float64 { return 1 })

	p, err := NewAssembler(DefaultDisplayOptions()).Assemble("T", series, 1)
	require.NoError(t, err)
	for i, s := range p.Dates {
		d, err := util.ParseDate(s)
		require.NoError(t, err)
		assert.True(t, d.Equal(series[i].Date))
	}
}

func TestAssembleEmptySeries(t *testing.T) {
	_, err := NewAssembler(DefaultDisplayOptions()).Assemble("T", nil, 1)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestNewAssemblerFillsZeroOptions(t *testing.T) {
	a := NewAssembler(DisplayOptions{CurrencySymbol: "₹"})
	assert.Equal(t, 85.0, a.opts.Factor)
	assert.Equal(t, 30, a.opts.Window)
}

func TestAssembleNoNegativeZero(t *testing.T) {
	series := tradingDays(2, func(i int) float64 { return 0.01 })
	a := NewAssembler(DisplayOptions{Factor: 1, CurrencySymbol: "₹", Window: 30})

	for _, predicted := range []float64{-0.001, -0.0049, math.Copysign(0, -1)} {
		p, err := a.Assemble("T", series, predicted)
		require.NoError(t, err)
		assert.Equal(t, "₹0.00", p.PredictedClose, "predicted=%v", predicted)
	}

	p, err := a.Assemble("T", series, -0.006)
	require.NoError(t, err)
	assert.Equal(t, "₹-0.01", p.PredictedClose)
}
