package server

import (
	"context"
	"fmt"

	"StockPredict/pkg/config"
	xhttp "StockPredict/pkg/http"
	applogger "StockPredict/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	log        *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{cfg: cfg, httpServer: srv, log: l}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting",
		applogger.String("provider", a.cfg.Provider.Name),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.Bool("ratelimit", a.cfg.RateLimit.Enabled),
	)

	errCh := a.httpServer.Start()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			a.log.Error("http server start error", applogger.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	}

	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	a.log.Info("shutdown complete")
	return nil
}
