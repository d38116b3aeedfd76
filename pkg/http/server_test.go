package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes struct{}

func (routes) RegisterRoutes(e *echo.Echo) {
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { panic("kaput") })
}

type fakeLimiter struct {
	allow bool
	err   error
}

func (f fakeLimiter) Allow(context.Context, string) (bool, error) { return f.allow, f.err }

// onePerKey allows the first request for each key and records the keys seen.
type onePerKey struct {
	mu   sync.Mutex
	seen map[string]int
}

func (o *onePerKey) Allow(_ context.Context, key string) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = map[string]int{}
	}
	o.seen[key]++
	return o.seen[key] == 1, nil
}

func serve(s *Server, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestServerHealthz(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0))
	rec := serve(s, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.Status)
	assert.Equal(t, "OK", body.Message)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerKeepsIncomingRequestID(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0))
	rec := serve(s, http.MethodGet, "/ok", map[string]string{echo.HeaderXRequestID: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerCORSPreflight(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0))
	rec := serve(s, http.MethodOptions, "/ok", map[string]string{echo.HeaderOrigin: "http://localhost:8000"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodGet)
}

func TestServerCORSDisabled(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0), WithCORS(false))
	rec := serve(s, http.MethodGet, "/ok", map[string]string{echo.HeaderOrigin: "http://localhost:8000"})
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServerRecoversPanics(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0))
	rec := serve(s, http.MethodGet, "/boom", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred: kaput", body.Error)
}

func TestServerRateLimit(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0), WithRateLimiter(fakeLimiter{allow: false}))
	rec := serve(s, http.MethodGet, "/ok", nil)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body.Error)
}

func TestServerRateLimitFailsOpen(t *testing.T) {
	s := NewServer(routes{}, WithMetrics("", 0), WithRateLimiter(fakeLimiter{err: errors.New("redis down")}))
	rec := serve(s, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerMetricsEndpoint(t *testing.T) {
	s := NewServer(routes{})
	_ = serve(s, http.MethodGet, "/ok", nil)
	rec := serve(s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAppErrorResponse(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, AppErrorResponse(c, BadRequestErrorf("bad %s", "ticker")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad ticker"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, AppErrorResponse(c, errors.New("opaque")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	lim := &onePerKey{}
	s := NewServer(routes{}, WithMetrics("", 0), WithRateLimiter(lim))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.RemoteAddr = "10.0.0.1:4321"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("1.2.3.%d", i))
		req.Header.Set(echo.HeaderXRealIP, fmt.Sprintf("5.6.7.%d", i))
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	assert.Equal(t, map[string]int{"10.0.0.1": 5}, lim.seen)
}

func TestServerRateLimitHonoursTrustedProxy(t *testing.T) {
	lim := &onePerKey{}
	s := NewServer(routes{}, WithMetrics("", 0), WithRateLimiter(lim), WithTrustedProxies([]string{"10.0.0.0/8"}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.RemoteAddr = "10.0.0.1:4321"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("1.2.3.%d", i))
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, lim.seen, 3)
}
