package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"StockPredict/internal/domain/models"
	"StockPredict/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) DailyCloses(ctx context.Context, ticker string) (models.Series, error) {
	args := m.Called(ctx, ticker)
	s, _ := args.Get(0).(models.Series)
	return s, args.Error(1)
}

type fetchRecord struct {
	provider, outcome string
	points            int
}

type fakeMetrics struct {
	fetches []fetchRecord
	ops     []string
}

func (f *fakeMetrics) RecordFetch(provider, outcome string, points int) {
	f.fetches = append(f.fetches, fetchRecord{provider, outcome, points})
}
func (f *fakeMetrics) RecordPrediction(string)              {}
func (f *fakeMetrics) RecordForecastChange(float64)         {}
func (f *fakeMetrics) RecordLatency(op string, _ float64)   { f.ops = append(f.ops, op) }

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func TestFetchSuccess(t *testing.T) {
	p := new(mockProvider)
	series := models.Series{{Date: day(4), Close: 10}, {Date: day(5), Close: 11}}
	p.On("DailyCloses", mock.Anything, "AAPL").Return(series, nil)
	m := &fakeMetrics{}

	res := NewSeriesRepository(p, time.Second, m, nil).Fetch(context.Background(), "AAPL")

	require.NoError(t, res.Err)
	assert.Equal(t, series, res.Series)
	assert.Equal(t, "AAPL", res.Ticker)
	assert.Equal(t, "mock", res.Provider)
	assert.Equal(t, []fetchRecord{{"mock", OutcomeOK, 2}}, m.fetches)
	assert.Equal(t, []string{"fetch"}, m.ops)
	p.AssertExpectations(t)
}

func TestFetchErrorDegradesToEmpty(t *testing.T) {
	p := new(mockProvider)
	p.On("DailyCloses", mock.Anything, "ZZZINVALID").Return(nil, errors.New("unexpected status 404"))
	m := &fakeMetrics{}
	var buf bytes.Buffer

	res := NewSeriesRepository(p, time.Second, m, logger.NewWriter(&buf, zerolog.DebugLevel)).
		Fetch(context.Background(), "ZZZINVALID")

	assert.True(t, res.Series.Empty())
	assert.EqualError(t, res.Err, "unexpected status 404")
	assert.Equal(t, []fetchRecord{{"mock", OutcomeError, 0}}, m.fetches)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"ticker":"ZZZINVALID"`)
	assert.Contains(t, buf.String(), `"provider":"mock"`)
}

func TestFetchEmptySeries(t *testing.T) {
	p := new(mockProvider)
	p.On("DailyCloses", mock.Anything, "AAPL").Return(models.Series{}, nil)
	m := &fakeMetrics{}

	res := NewSeriesRepository(p, 0, m, nil).Fetch(context.Background(), "AAPL")

	assert.True(t, res.Series.Empty())
	assert.NoError(t, res.Err)
	assert.Equal(t, []fetchRecord{{"mock", OutcomeEmpty, 0}}, m.fetches)
}

func TestFetchAppliesTimeout(t *testing.T) {
	p := new(mockProvider)
	p.On("DailyCloses", mock.Anything, "AAPL").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	res := NewSeriesRepository(p, 10*time.Millisecond, nil, nil).Fetch(context.Background(), "AAPL")

	assert.True(t, res.Series.Empty())
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}
