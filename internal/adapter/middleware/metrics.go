package middleware

import (
	"strconv"

	"grynvault-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
)

// RequestCounter counts requests by route template, method and final status.
func RequestCounter(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				// let echo write the error so the status is final
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(route, c.Request().Method, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}
