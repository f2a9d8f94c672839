// Package metrics provides Prometheus metrics for the Fern service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParsesTotal tracks record parses by entity and outcome
	ParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "parser",
			Name:      "parses_total",
			Help:      "Total number of record parses by entity and status",
		},
		[]string{"entity", "status"},
	)

	// ParseDuration tracks parse duration in seconds
	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "parser",
			Name:      "parse_duration_seconds",
			Help:      "Duration of record parses in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"entity"},
	)

	// HTTPRequestsTotal tracks outbound page requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Total number of outbound HTTP requests",
		},
		[]string{"method", "status_code"},
	)

	// HTTPRequestDuration tracks outbound page request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// CacheLookupsTotal tracks result cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of result cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)

	// DocumentsProcessed tracks raw documents consumed by the worker
	DocumentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "worker",
			Name:      "documents_processed_total",
			Help:      "Total number of raw documents processed by type and status",
		},
		[]string{"type", "status"},
	)

	// DocumentsInFlight tracks documents currently being parsed by the worker
	DocumentsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "worker",
			Name:      "documents_in_flight",
			Help:      "Number of raw documents currently being processed",
		},
	)

	// KafkaPublishTotal tracks Kafka message publishes
	KafkaPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "publish_total",
			Help:      "Total number of Kafka messages published",
		},
		[]string{"topic", "status"},
	)

	// KafkaPublishDuration tracks Kafka publish duration
	KafkaPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Duration of Kafka publishes in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"topic"},
	)
)

// RecordParse records a parse outcome
func RecordParse(entity, status string, durationSeconds float64) {
	ParsesTotal.WithLabelValues(entity, status).Inc()
	ParseDuration.WithLabelValues(entity).Observe(durationSeconds)
}

// RecordHTTPRequest records an outbound HTTP request
func RecordHTTPRequest(method, statusCode string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(durationSeconds)
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(kind, result).Inc()
}

// RecordDocument records a worker document outcome
func RecordDocument(docType, status string) {
	DocumentsProcessed.WithLabelValues(docType, status).Inc()
}

// RecordKafkaPublish records a Kafka publish
func RecordKafkaPublish(topic, status string, durationSeconds float64) {
	KafkaPublishTotal.WithLabelValues(topic, status).Inc()
	KafkaPublishDuration.WithLabelValues(topic).Observe(durationSeconds)
}
