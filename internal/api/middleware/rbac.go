package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/api/metrics"
	"github.com/smartlicense/license-api/internal/core/domain"
)

// RBAC admits the request when the role stored by BasicAuth is one of roles.
// A request that never went through BasicAuth carries no role and is refused.
// The refusal is returned as a domain error so the central handler renders it.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if allowed[role] {
				return next(c)
			}
			metrics.BasicAuthFailuresTotal.WithLabelValues("role_denied").Inc()
			if role == "" {
				return domain.ErrForbidden
			}
			return fmt.Errorf("role %s may not %s %s: %w", role, c.Request().Method, c.Path(), domain.ErrForbidden)
		}
	}
}
