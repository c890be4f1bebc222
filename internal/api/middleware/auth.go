package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/smartlicense/license-api/internal/api/metrics"
	"github.com/smartlicense/license-api/internal/core/domain"
)

// Context keys set by BasicAuth for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

const realm = "license-api"

// Authenticator checks a username/password pair on every protected request.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Identity, error)
}

// BasicAuth requires HTTP Basic credentials and injects the caller's identity
// into the echo context. There are no sessions: credentials are re-presented
// and re-verified on every call.
//
// Wrong credentials answer 401; valid credentials of a learner or inactive
// account surface the domain error, which the error handler renders as 403.
func BasicAuth(authn Authenticator) echo.MiddlewareFunc {
	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: realm,
		Validator: func(username, password string, c echo.Context) (bool, error) {
			id, err := authn.Authenticate(c.Request().Context(), username, password)
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials):
				metrics.BasicAuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
				return false, nil
			case errors.Is(err, domain.ErrForbidden):
				metrics.BasicAuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return false, err
			case err != nil:
				return false, err
			}

			c.Set(ContextUserID, id.UserID)
			c.Set(ContextUsername, id.Username)
			c.Set(ContextRole, id.Role)
			return true, nil
		},
	})
}
