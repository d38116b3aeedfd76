package models

import (
	"math"
	"sort"
	"time"
)

// PricePoint is one trading day's adjusted close. Date is midnight UTC of the
// exchange-local calendar day.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// Series is ordered strictly by Date, one point per trading day. An empty
// Series means the provider returned no data.
type Series []PricePoint

// Len returns the number of points.
func (s Series) Len() int { return len(s) }

// Empty reports whether the series holds no data.
func (s Series) Empty() bool { return len(s) == 0 }

// Last returns the most recent point. ok is false for an empty series.
func (s Series) Last() (p PricePoint, ok bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the last min(n, len) points in chronological order. The
// result shares memory with s.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Closes returns the close prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// NormalizeSeries orders points by date, drops non-positive or non-finite
// closes and collapses duplicate dates keeping the last one seen, so the
// result is strictly increasing by date.
func NormalizeSeries(points []PricePoint) Series {
	kept := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			continue
		}
		kept = append(kept, p)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Date.Before(kept[j].Date) })

	out := make(Series, 0, len(kept))
	for _, p := range kept {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// FetchResult is what a series fetch yields: the (possibly empty) series and,
// when the fetch failed, the reason. Err is diagnostic only; callers branch on
// Series.Empty().
type FetchResult struct {
	Ticker   string
	Provider string
	Series   Series
	Err      error
}
