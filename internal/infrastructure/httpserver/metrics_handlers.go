package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "The HTTP request latencies in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	metricsHandler = promhttp.Handler()
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func GetRequestsTotal() *prometheus.CounterVec {
	return requestsTotal
}

func GetRequestDuration() *prometheus.HistogramVec {
	return requestDuration
}

func (s *Server) LogMetricsInitialization() {
	if s.logger != nil {
		s.logger.WithFields(map[string]interface{}{
			"http":             "http_requests_total, http_request_duration_seconds",
			"cache":            "cache_operations_total",
			"cms":              "cms_requests_total, cms_request_duration_seconds",
			"metrics_endpoint": "/metrics",
		}).Info("Prometheus metrics registered")
	}
}

func (s *Server) metricsEndpoint(c echo.Context) error {
	metricsHandler.ServeHTTP(c.Response(), c.Request())
	return nil
}
