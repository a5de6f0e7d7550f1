// Package server exposes the dashboard state and the ingestion operations over
// HTTP with echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/greenops"
	"github.com/scopezero/scopezero/internal/ingest"
)

// DefaultRecordLimit is the page size of GET /api/records.
const DefaultRecordLimit = 100

// StateStore is the part of the store the API reads and resets.
type StateStore interface {
	Snapshot() engine.Snapshot
	Reset() engine.Snapshot
}

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	MaxUploadMB int
	ReadTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	router   *echo.Echo
	store    StateStore
	ingestor *ingest.Ingestor
	factors  *greenops.Table
	metrics  *Metrics
	logger   zerolog.Logger
}

// New builds the router. metrics must be the observer registered on ingestor
// so commit counters stay in step with the store.
func New(
	store StateStore,
	ingestor *ingest.Ingestor,
	factors *greenops.Table,
	metrics *Metrics,
	logger zerolog.Logger,
	opts Options,
) *Server {
	svc := &Server{
		router:   echo.New(),
		store:    store,
		ingestor: ingestor,
		factors:  factors,
		metrics:  metrics,
		logger:   logger,
	}
	svc.metrics.SetTotal(store.Snapshot().TotalEmissions)

	r := svc.router
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = svc.httpErrorHandler
	r.Server.ReadTimeout = opts.ReadTimeout

	r.Use(middleware.Recover())
	r.Use(svc.traceMiddleware)
	r.Use(svc.requestLogger)
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderContentType},
		}))
	}
	if opts.MaxUploadMB > 0 {
		r.Use(middleware.BodyLimit(fmt.Sprintf("%dM", opts.MaxUploadMB)))
	}

	r.GET("/healthz", svc.health)
	r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/dashboard", svc.dashboard)
	api.GET("/recommendations", svc.recommendations)
	api.GET("/records", svc.records)
	api.POST("/records", svc.addRecord)
	api.GET("/emission-factors", svc.emissionFactors)
	api.GET("/audit", svc.audit)
	api.GET("/template", svc.template)
	api.POST("/upload", svc.upload)
	api.GET("/partners", svc.partners)
	api.POST("/partners/:name/sync", svc.syncPartner)
	api.POST("/reset", svc.reset)

	return svc
}

// Handler returns the root HTTP handler.
func (svc *Server) Handler() http.Handler {
	return svc.router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (svc *Server) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		svc.logger.Info().
			Str("component", "server").
			Str("addr", addr).
			Msg("listening")
		errCh <- svc.router.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.router.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
