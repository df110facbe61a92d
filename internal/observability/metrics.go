package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingest pipeline.
type Metrics struct {
	FilesProcessed         prometheus.Counter
	FileFailures           prometheus.Counter
	StormsNormalized       prometheus.Counter
	ObservationsNormalized prometheus.Counter
	PipelineRunning        prometheus.Gauge

	FileProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "files_processed_total",
			Help:      "Source files extracted, normalized, and loaded.",
		}),
		FileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "file_failures_total",
			Help:      "Source files that failed extraction, normalization, or loading.",
		}),
		StormsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "storms_normalized_total",
			Help:      "Storm summary records produced.",
		}),
		ObservationsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "observations_normalized_total",
			Help:      "Observation records produced.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hurdat2_etl",
			Name:      "pipeline_running",
			Help:      "1 while a run is active, 0 otherwise.",
		}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurdat2_etl",
			Name:      "file_processing_duration_seconds",
			Help:      "Duration of one file's extract-normalize-load cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.FilesProcessed,
		m.FileFailures,
		m.StormsNormalized,
		m.ObservationsNormalized,
		m.PipelineRunning,
		m.FileProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "files_processed_total"}),
		FileFailures:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "file_failures_total"}),
		StormsNormalized:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "storms_normalized_total"}),
		ObservationsNormalized: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "observations_normalized_total"}),
		PipelineRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hurdat2_etl", Name: "pipeline_running"}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hurdat2_etl", Name: "file_processing_duration_seconds"}),
	}
}
