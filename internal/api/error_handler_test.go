package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", domain.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
		{"conflict", domain.ErrUserExists, http.StatusConflict, "username or email already exists"},
		{"credentials", fmt.Errorf("lookup: %w", domain.ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrUserInactive, http.StatusForbidden, domain.ErrUserInactive.Error()},
		{"validation", domain.Invalid("result must be one of: pending passed failed absent"), http.StatusUnprocessableEntity,
			"validation failed: result must be one of: pending passed failed absent"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}
