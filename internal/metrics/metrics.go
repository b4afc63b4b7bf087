// Package metrics exposes Prometheus counters for normalization passes and
// the HTTP API. Each Collector owns its registry, so several can coexist in
// one process (tests, embedded servers).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "gitgraphgo"

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	Statements        *prometheus.CounterVec
	UnknownStatements *prometheus.CounterVec
	ParseErrors       *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector creates a collector registered on a fresh registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	statements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Total number of sink calls made while populating git graphs",
		},
		[]string{"kind"},
	)

	unknown := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_statements_total",
			Help:      "Total number of statements skipped because their kind is not recognized",
		},
		[]string{"kind"},
	)

	parseErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total number of documents that failed to parse",
		},
		[]string{"format"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(statements, unknown, parseErrors, httpRequests, httpDuration)

	return &Collector{
		registry:          registry,
		Statements:        statements,
		UnknownStatements: unknown,
		ParseErrors:       parseErrors,
		HTTPRequests:      httpRequests,
		HTTPDuration:      httpDuration,
	}
}

// UnknownStatement counts a skipped statement. Its signature matches
// gitgraph.WithUnknownHandler.
func (c *Collector) UnknownStatement(kind string) {
	c.UnknownStatements.WithLabelValues(kind).Inc()
}

// ParseError counts a document of the given format that failed to parse.
func (c *Collector) ParseError(format string) {
	c.ParseErrors.WithLabelValues(format).Inc()
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
