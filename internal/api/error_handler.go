package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// categoryStatus lists the domain error categories in match order. The
// message of a matched error is shown to the client as is, except for bad
// credentials, which always read the same.
var categoryStatus = []struct {
	category error
	status   int
	message  string
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrNotFound, http.StatusNotFound, ""},
	{domain.ErrConflict, http.StatusConflict, ""},
	{domain.ErrForbidden, http.StatusForbidden, ""},
	{domain.ErrValidation, http.StatusUnprocessableEntity, ""},
}

// NewHTTPErrorHandler renders handler and middleware errors as {"error": msg}.
// Errors outside the domain categories are logged and hidden behind a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusOf(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Error: msg})
	}
}

func statusOf(err error) (int, string) {
	// bind failures, unknown routes, the Basic auth challenge
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	for _, cs := range categoryStatus {
		if !errors.Is(err, cs.category) {
			continue
		}
		if cs.message != "" {
			return cs.status, cs.message
		}
		return cs.status, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
