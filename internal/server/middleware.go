package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scopezero/scopezero/internal/logging"
)

// HeaderTraceID carries the request trace ID in both directions.
const HeaderTraceID = "X-Trace-Id"

// traceMiddleware attaches the server logger and a trace ID to the request context.
func (svc *Server) traceMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()
		if id := req.Header.Get(HeaderTraceID); id != "" {
			ctx = logging.ContextWithTraceID(ctx, id)
		}
		id := logging.GetOrGenerateTraceID(ctx)
		ctx = logging.ContextWithTraceID(ctx, id)
		ctx = svc.logger.WithContext(ctx)

		c.SetRequest(req.WithContext(ctx))
		c.Response().Header().Set(HeaderTraceID, id)
		return next(c)
	}
}

func (svc *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		ctx := c.Request().Context()
		log := logging.FromContext(ctx)
		log.Debug().Ctx(ctx).
			Str("component", "server").
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("status", c.Response().Status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return nil
	}
}
