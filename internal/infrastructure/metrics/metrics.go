package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Analysis service metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Pipeline stage outcomes (search, extract, relay)
	PipelineStageTotal *prometheus.CounterVec

	// External provider latency
	ProviderLatency *prometheus.HistogramVec

	// Keep-alive frames injected into client streams
	KeepAlivesTotal prometheus.Counter
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intent",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	PipelineStageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intent",
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Pipeline stage executions by outcome",
		},
		[]string{"stage", "outcome"},
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intent",
			Subsystem: "pipeline",
			Name:      "provider_latency_seconds",
			Help:      "External provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	KeepAlivesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "intent",
			Subsystem: "stream",
			Name:      "keepalives_total",
			Help:      "Synthetic keep-alive frames sent to clients",
		},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(PipelineStageTotal)
	prometheus.MustRegister(ProviderLatency)
	prometheus.MustRegister(KeepAlivesTotal)

	log.Debug().Msg("prometheus metrics registered")
}

// RecordRequest increments the HTTP request counter.
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordStage increments a pipeline stage counter.
func RecordStage(stage, outcome string) {
	PipelineStageTotal.WithLabelValues(stage, outcome).Inc()
}

// ObserveProviderLatency records how long an external provider call took.
func ObserveProviderLatency(provider string, seconds float64) {
	ProviderLatency.WithLabelValues(provider).Observe(seconds)
}
