// Package metrics counts what a generation run produced. The CLI can dump the
// registry in Prometheus text format for the node-exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "keygen"

// Key kinds used as the "kind" label.
const (
	KindNode      = "node"
	KindValidator = "validator"
)

// Metrics holds all generation metrics
type Metrics struct {
	registry *prometheus.Registry

	KeysGenerated      *prometheus.CounterVec
	FilesWritten       prometheus.Counter
	EntropyReseeds     prometheus.Gauge
	GenerationDuration *prometheus.HistogramVec
	Errors             *prometheus.CounterVec
	LastRunTimestamp   prometheus.Gauge
}

// New creates metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		KeysGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_generated_total",
			Help:      "Total number of keypairs generated",
		}, []string{"kind"}),

		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Total number of key files written",
		}),

		EntropyReseeds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entropy_reseeds",
			Help:      "Number of times the generator state was reseeded from the OS",
		}),

		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating and writing one key",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"kind"}),

		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of failed runs by error kind",
		}, []string{"kind"}),

		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	reg.MustRegister(
		m.KeysGenerated,
		m.FilesWritten,
		m.EntropyReseeds,
		m.GenerationDuration,
		m.Errors,
		m.LastRunTimestamp,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveKey records one generated key of kind.
func (m *Metrics) ObserveKey(kind string, started time.Time) {
	m.KeysGenerated.WithLabelValues(kind).Inc()
	m.GenerationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// WriteTextfile writes the registry to path in Prometheus text format. The
// write goes through a temp file and rename.
func (m *Metrics) WriteTextfile(path string) error {
	m.LastRunTimestamp.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
