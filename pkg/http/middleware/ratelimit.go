package middleware

import (
	"context"
	"net/http"

	applogger "StockPredict/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over the limit with 429. Limiter errors fail open.
func RateLimit(lim Limiter, l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			ok, err := lim.Allow(c.Request().Context(), key)
			if err != nil {
				l.Warn("rate limiter unavailable", applogger.Error(err))
				return next(c)
			}
			if !ok {
				l.Warn("rate limited", applogger.String("remote", key))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
