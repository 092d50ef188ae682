// Package metrics provides Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors.
type Registry struct {
	registry *prometheus.Registry

	requestTotal       *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	approvalTotal      *prometheus.CounterVec
	batchSize          prometheus.Histogram
	evaluationDuration prometheus.Histogram
	complianceScore    *prometheus.GaugeVec
}

// New creates a Registry with all collectors registered under the
// "fibreflow" namespace, alongside the standard Go and process collectors.
func New(service string) *Registry {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "fibreflow",
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests by method and status class.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"method", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "fibreflow",
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds by method.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"method"},
	)
	approvalTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "fibreflow",
			Subsystem:   "approval",
			Name:        "decisions_total",
			Help:        "Total approval decisions by action and outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"action", "outcome"},
	)
	batchSize := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "fibreflow",
			Subsystem:   "approval",
			Name:        "batch_size",
			Help:        "Number of documents per batch approval request.",
			Buckets:     []float64{1, 2, 5, 10, 20, 35, 50},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	evaluationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "fibreflow",
			Subsystem:   "compliance",
			Name:        "evaluation_duration_seconds",
			Help:        "Compliance evaluation pass duration in seconds.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	complianceScore := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   "fibreflow",
			Subsystem:   "compliance",
			Name:        "overall_score",
			Help:        "Last computed overall compliance score per contractor.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"contractor"},
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestTotal,
		requestDuration,
		approvalTotal,
		batchSize,
		evaluationDuration,
		complianceScore,
	)

	return &Registry{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		approvalTotal:      approvalTotal,
		batchSize:          batchSize,
		evaluationDuration: evaluationDuration,
		complianceScore:    complianceScore,
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (r *Registry) ObserveRequest(method, status string, duration time.Duration) {
	r.requestTotal.WithLabelValues(method, status).Inc()
	r.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveDecision records one approval decision outcome.
func (r *Registry) ObserveDecision(action, outcome string) {
	r.approvalTotal.WithLabelValues(action, outcome).Inc()
}

// ObserveBatch records the size of a batch approval request.
func (r *Registry) ObserveBatch(size int) {
	r.batchSize.Observe(float64(size))
}

// ObserveEvaluation records the duration of a compliance evaluation pass.
func (r *Registry) ObserveEvaluation(duration time.Duration) {
	r.evaluationDuration.Observe(duration.Seconds())
}

// SetComplianceScore records the last computed overall score for a contractor.
func (r *Registry) SetComplianceScore(contractor string, score int) {
	r.complianceScore.WithLabelValues(contractor).Set(float64(score))
}
