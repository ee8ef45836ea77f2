// Package metrics holds the Prometheus collectors shared by the cache and CMS layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	cmsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_requests_total",
			Help: "Outbound CMS requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	cmsRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cms_request_duration_seconds",
			Help: "Outbound CMS request latencies in seconds",
		},
		[]string{"resource"},
	)
)

func init() {
	prometheus.MustRegister(cacheOperations)
	prometheus.MustRegister(cmsRequests)
	prometheus.MustRegister(cmsRequestDuration)
}

// CacheOperations returns the cache operation counter.
func CacheOperations() *prometheus.CounterVec {
	return cacheOperations
}

// CMSRequests returns the outbound CMS request counter.
func CMSRequests() *prometheus.CounterVec {
	return cmsRequests
}

// CMSRequestDuration returns the outbound CMS latency histogram.
func CMSRequestDuration() *prometheus.HistogramVec {
	return cmsRequestDuration
}
