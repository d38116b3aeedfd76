package features

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoObservations = errors.New("features: no observations")
	ErrNonFinite      = errors.New("features: non-finite value")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitIndexLine fits ordinary least squares y ≈ a*i + b where i is the
// zero-based position of each observation. A single observation gives a
// flat line through it.
func FitIndexLine(ys []float64) (Line, error) {
	n := len(ys)
	if n == 0 {
		return Line{}, ErrNoObservations
	}

	sumY := 0.0
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return Line{}, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		sumY += y
	}
	nf := float64(n)
	meanX := (nf - 1) / 2
	meanY := sumY / nf

	// centred sums keep precision for long series of large prices
	sxy, sxx := 0.0, 0.0
	for i, y := range ys {
		dx := float64(i) - meanX
		sxy += dx * (y - meanY)
		sxx += dx * dx
	}

	slope := 0.0
	if sxx > 0 {
		slope = sxy / sxx
	}
	return Line{Slope: slope, Intercept: meanY - slope*meanX}, nil
}
