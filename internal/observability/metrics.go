package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the export layer.
type Metrics struct {
	DocumentsSerialized *prometheus.CounterVec // label: kind
	ExportErrors        *prometheus.CounterVec // label: kind
	SerializeDuration   prometheus.Histogram
	RecordsSerialized   prometheus.Counter
}

// NewMetrics creates and registers all export metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting creates metrics on a fresh registry, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(prometheus.NewRegistry())
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsSerialized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_export",
			Name:      "documents_serialized_total",
			Help:      "Total NRML documents serialized, by result kind.",
		}, []string{"kind"}),
		ExportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_export",
			Name:      "export_errors_total",
			Help:      "Total failed export attempts, by result kind.",
		}, []string{"kind"}),
		SerializeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_export",
			Name:      "serialize_duration_seconds",
			Help:      "Wall time spent decoding a bundle and serializing its document.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		RecordsSerialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_export",
			Name:      "records_serialized_total",
			Help:      "Total top-level result records written into documents.",
		}),
	}

	reg.MustRegister(
		m.DocumentsSerialized,
		m.ExportErrors,
		m.SerializeDuration,
		m.RecordsSerialized,
	)
	return m
}
