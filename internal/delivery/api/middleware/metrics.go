package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPMetrics records request latency per route.
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// MetricsMiddleware feeds request outcomes into HTTPMetrics.
type MetricsMiddleware struct {
	metrics HTTPMetrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics HTTPMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Handle observes the request once the error handler has written the response. The
// error is still returned so outer middleware can log it.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

		return err
	}
}
