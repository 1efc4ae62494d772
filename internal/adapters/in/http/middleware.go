package http

import (
	"errors"

	"fleetops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts, latency and in-flight requests. Requests
// are labelled by route pattern so ids do not create new series.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			done := m.RequestStarted(c.Request().Method, path)

			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}
			done(status)
			return err
		}
	}
}
