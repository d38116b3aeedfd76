package twelvedata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockPredict/internal/domain/models"
	drepo "StockPredict/internal/domain/repository"
	xhttp "StockPredict/pkg/http"
	"StockPredict/pkg/util"
)

const (
	DefaultBaseURL = "https://api.twelvedata.com"
	Name           = "twelvedata"

	// outputSize is the API maximum; a year of daily bars fits well within it.
	outputSize = "5000"
)

var ErrNoData = errors.New("twelvedata: no data returned")

// Client is the Twelve Data time_series client.
type Client struct {
	apiKey  string
	baseURL string
	rng     string
	http    *xhttp.Client
	now     func() time.Time
}

// Options holds options for creating a new Twelve Data client.
type Options struct {
	APIKey         string
	BaseURL        string
	Range          string
	Timeout        time.Duration
	RequestsPerSec float64
}

// New creates a new Twelve Data PriceProvider.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		rng:     opts.Range,
		http: xhttp.NewClient(
			xhttp.WithTimeout(opts.Timeout),
			xhttp.WithRateLimit(opts.RequestsPerSec, 1),
			xhttp.WithHeader("Accept", "application/json"),
		),
		now: time.Now,
	}
}

func (c *Client) Name() string { return Name }

type timeSeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}

// DailyCloses fetches adjusted daily closes from the start of the configured
// range up to today.
func (c *Client) DailyCloses(ctx context.Context, ticker string) (models.Series, error) {
	start := util.StartOfRange(c.now(), c.rng)

	var data timeSeriesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/time_series",
		QueryParams: map[string][]string{
			"symbol":     {ticker},
			"interval":   {"1day"},
			"start_date": {util.FormatDate(start)},
			"adjust":     {"all"},
			"order":      {"ASC"},
			"outputsize": {outputSize},
			"apikey":     {c.apiKey},
		},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("twelvedata fetch %s: %w", ticker, err)
	}

	// Errors come back with HTTP 200 and status "error".
	if data.Status == "error" {
		return nil, fmt.Errorf("twelvedata api error %d: %s", data.Code, data.Message)
	}
	if len(data.Values) == 0 {
		return nil, ErrNoData
	}

	points := make([]models.PricePoint, 0, len(data.Values))
	for _, v := range data.Values {
		date, err := util.ParseDate(firstField(v.Datetime))
		if err != nil {
			return nil, fmt.Errorf("twelvedata: %w", err)
		}
		closePrice, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: parse close %q: %w", v.Close, err)
		}
		points = append(points, models.PricePoint{Date: date, Close: closePrice})
	}

	series := models.NormalizeSeries(points)
	if series.Empty() {
		return nil, ErrNoData
	}
	return series, nil
}

// firstField strips a time component, if any, from a datetime value.
func firstField(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

var _ drepo.PriceProvider = (*Client)(nil)
