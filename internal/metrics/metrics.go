// Package metrics provides Prometheus metrics for the name parser service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cognicore/nameparser/pkg/nameparser"
)

var (
	// ParsesTotal tracks parsed names by kind (person or company)
	ParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "parser",
			Name:      "parses_total",
			Help:      "Total number of parsed names by kind",
		},
		[]string{"kind"},
	)

	// PartsTotal tracks classified parts by category
	PartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "parser",
			Name:      "parts_total",
			Help:      "Total number of classified parts by category",
		},
		[]string{"category"},
	)

	// UnclassifiedTotal tracks words no rule claimed
	UnclassifiedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "parser",
			Name:      "unclassified_words_total",
			Help:      "Total number of words left unclassified",
		},
	)

	// ParseDuration tracks parse latency in seconds
	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nameparser",
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Duration of single name parses in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// CacheLookups tracks parse cache hits and misses
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of parse cache lookups by result",
		},
		[]string{"result"},
	)

	// StoreErrors tracks failed store operations
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameparser",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nameparser",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "route"},
	)
)

// ObserveParse records the outcome of one parse
func ObserveParse(n *nameparser.Name, took time.Duration) {
	kind := "person"
	if n.IsCompany() {
		kind = "company"
	}
	ParsesTotal.WithLabelValues(kind).Inc()
	ParseDuration.Observe(took.Seconds())
	for _, p := range n.Parts() {
		PartsTotal.WithLabelValues(p.Category.String()).Inc()
	}
	if words := len(n.Unclassified()); words > 0 {
		UnclassifiedTotal.Add(float64(words))
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
