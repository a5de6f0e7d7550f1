package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scopezero/scopezero/internal/ingest"
	"github.com/scopezero/scopezero/internal/logging"
	"github.com/scopezero/scopezero/internal/tabular"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrBadUpload means the upload request or file could not be read.
const ErrBadUpload = constError("bad upload")

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// statusFor maps an error chain to an HTTP status.
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, ingest.ErrNoUsableRecords), errors.Is(err, ingest.ErrInvalidEntry):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingest.ErrUnknownPartner):
		return http.StatusNotFound
	case errors.Is(err, ErrBadUpload), errors.Is(err, tabular.ErrUnsupportedFormat),
		errors.Is(err, tabular.ErrNoSheet):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (svc *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(he.Code)
		}
	}

	if code >= http.StatusInternalServerError {
		ctx := c.Request().Context()
		log := logging.FromContext(ctx)
		log.Error().Ctx(ctx).
			Str("component", "server").
			Str("path", c.Path()).
			Err(err).
			Msg("request failed")
		msg = http.StatusText(code)
	}

	_ = c.JSON(code, ErrorResponse{Message: msg, Code: code})
}
