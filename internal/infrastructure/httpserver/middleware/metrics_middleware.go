package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests that hit no registered route, keeping raw
// paths out of the label set.
const unmatchedRoute = "unmatched"

type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	skip            map[string]bool
}

// NewMetricsMiddleware records request counts and latency per route template.
// Requests to skipPaths (typically the scrape endpoint) are not recorded.
func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec, skipPaths ...string) *MetricsMiddleware {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return &MetricsMiddleware{requestsTotal: requestsTotal, requestDuration: requestDuration, skip: skip}
}

func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.requestsTotal == nil || m.skip[c.Request().URL.Path] {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" || c.Response().Status == http.StatusNotFound && route == "/*" {
				route = unmatchedRoute
			}
			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			if m.requestDuration != nil {
				m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			}
			return nil
		}
	}
}
