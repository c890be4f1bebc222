package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/api/metrics"
)

// Metrics observes every request in the HTTP duration histogram, labelled by
// route template rather than raw path to keep cardinality bounded.
//
// Errors are handed to the HTTP error handler here so the recorded status is
// the one actually written.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
