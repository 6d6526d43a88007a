// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the classification pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	clausesTotal      *prometheus.CounterVec
	clauseErrorsTotal *prometheus.CounterVec
	documentsTotal    *prometheus.CounterVec
	pipelineDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexclause",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexclause",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lexclause",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	clausesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexclause",
			Subsystem: "pipeline",
			Name:      "clauses_classified_total",
			Help:      "Total clauses classified, by model and confidence tier.",
		},
		[]string{"model", "tier"},
	)
	clauseErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexclause",
			Subsystem: "pipeline",
			Name:      "clause_errors_total",
			Help:      "Total per-clause classification failures, by reason.",
		},
		[]string{"model", "reason"},
	)
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexclause",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total documents processed, by outcome.",
		},
		[]string{"model", "status"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexclause",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Document classification duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		clausesTotal,
		clauseErrorsTotal,
		documentsTotal,
		pipelineDuration,
	)

	return &Metrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		clausesTotal:      clausesTotal,
		clauseErrorsTotal: clauseErrorsTotal,
		documentsTotal:    documentsTotal,
		pipelineDuration:  pipelineDuration,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) RecordClause(model, tier string) {
	m.clausesTotal.WithLabelValues(model, tier).Inc()
}

func (m *Metrics) RecordClauseError(model, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.clauseErrorsTotal.WithLabelValues(model, reason).Inc()
}

func (m *Metrics) RecordDocument(model, status string, duration time.Duration) {
	m.documentsTotal.WithLabelValues(model, status).Inc()
	m.pipelineDuration.WithLabelValues(model).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
