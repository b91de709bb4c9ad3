package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the serving process. Each
// process gets its own registry so tests never collide.
type Metrics struct {
	summarizationsTotal *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	registry            *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		summarizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condense_summarizations_total",
				Help: "Summarization requests by source kind and outcome",
			},
			[]string{"source", "outcome"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condense_http_requests_total",
				Help: "HTTP requests by method, path and status code",
			},
			[]string{"method", "path", "code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "condense_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.summarizationsTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// RecordSummarization counts one summarization by source kind ("video"
// or "webpage") and outcome, either "success" or an error kind name.
func (m *Metrics) RecordSummarization(source, outcome string) {
	m.summarizationsTotal.WithLabelValues(source, outcome).Inc()
}

// Handler serves the scrape endpoint for this registry only.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		path := normalizePath(r.URL.Path)
		m.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath caps label cardinality by folding unknown paths together.
func normalizePath(p string) string {
	switch p {
	case "/", "/summarize", "/summary.pdf", "/health", "/metrics":
		return p
	default:
		return "other"
	}
}
