package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: the
// AppError code and message pair, nothing else. Internal details and stack
// traces never leak.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders AppErrors with their own status code and message.
//   - Maps Echo's own errors (bind failures, 404 from router) transparently.
//   - Logs anything unexpected and answers with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Code: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// AppError is the only error contract crossing out of the services.
	if appErr, ok := domain.AsAppError(err); ok {
		if appErr.Code >= 500 {
			log.Error().
				Str("context", appErr.Context).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg(appErr.Message)
		}
		return appErr.Code, appErr.Message
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
