package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"StockPredict/internal/domain/models"
	drepo "StockPredict/internal/domain/repository"
	xhttp "StockPredict/pkg/http"
	"StockPredict/pkg/util"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	Name           = "yahoo"

	userAgent = "Mozilla/5.0 (compatible; StockPredict/1.0)"
)

var ErrNoData = errors.New("yahoo: no data returned")

// Client implements a PriceProvider backed by the Yahoo Finance chart API.
type Client struct {
	baseURL string
	rng     string
	http    *xhttp.Client
}

// Options configure the Yahoo client.
type Options struct {
	BaseURL        string
	Range          string
	Timeout        time.Duration
	RequestsPerSec float64
}

// New creates a Yahoo PriceProvider.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Range == "" {
		opts.Range = "1y"
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		rng:     opts.Range,
		http: xhttp.NewClient(
			xhttp.WithTimeout(opts.Timeout),
			xhttp.WithRateLimit(opts.RequestsPerSec, 1),
			xhttp.WithHeader("User-Agent", userAgent),
			xhttp.WithHeader("Accept", "application/json"),
		),
	}
}

func (c *Client) Name() string { return Name }

type quoteSeries struct {
	Close []*float64 `json:"close"`
}

type adjCloseSeries struct {
	AdjClose []*float64 `json:"adjclose"`
}

// chartResponse is the subset of the chart API payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote    []quoteSeries    `json:"quote"`
				AdjClose []adjCloseSeries `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns split/dividend adjusted daily closes for the
// configured trailing range.
func (c *Client) DailyCloses(ctx context.Context, ticker string) (models.Series, error) {
	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker)),
		QueryParams: map[string][]string{
			"range":                {c.rng},
			"interval":             {"1d"},
			"events":               {"div,split"},
			"includeAdjustedClose": {"true"},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	closes := pickCloses(result.Indicators.AdjClose, result.Indicators.Quote)
	if closes == nil {
		return nil, fmt.Errorf("yahoo: response has no close prices")
	}
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bar (halt, holiday placeholder)
		}
		points = append(points, models.PricePoint{
			Date:  util.CalendarDate(time.Unix(ts, 0), loc),
			Close: *closes[i],
		})
	}

	series := models.NormalizeSeries(points)
	if series.Empty() {
		return nil, ErrNoData
	}
	return series, nil
}

// pickCloses prefers adjusted closes and falls back to raw closes.
func pickCloses(adj []adjCloseSeries, quote []quoteSeries) []*float64 {
	if len(adj) > 0 && len(adj[0].AdjClose) > 0 {
		return adj[0].AdjClose
	}
	if len(quote) > 0 && len(quote[0].Close) > 0 {
		return quote[0].Close
	}
	return nil
}

func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", gmtOffset)
}

var _ drepo.PriceProvider = (*Client)(nil)
