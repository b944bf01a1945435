// Package metrics records batch outcomes in a Prometheus registry and reads
// runtime memory statistics for the verbose report.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "agecalc"

// Batch holds the per-strategy counters and histograms of one process run.
// It satisfies orchestration.Recorder.
type Batch struct {
	registry       *prometheus.Registry
	peopleComputed *prometheus.CounterVec
	batchFailures  *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
}

// NewBatch creates the batch metrics on a private registry, together with the
// Go runtime collector.
func NewBatch() *Batch {
	b := &Batch{
		registry: prometheus.NewRegistry(),
		peopleComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "people_computed_total",
			Help:      "Number of people whose age was computed, by strategy.",
		}, []string{"strategy"}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Number of batches that failed, by strategy.",
		}, []string{"strategy"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a batch, by strategy.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"strategy"}),
	}
	b.registry.MustRegister(
		b.peopleComputed,
		b.batchFailures,
		b.batchDuration,
		collectors.NewGoCollector(),
	)
	return b
}

// ObserveRun records one finished strategy run. A failed run counts no people.
func (b *Batch) ObserveRun(strategy string, people int, duration time.Duration, err error) {
	b.batchDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if err != nil {
		b.batchFailures.WithLabelValues(strategy).Inc()
		return
	}
	b.peopleComputed.WithLabelValues(strategy).Add(float64(people))
}

// Registry exposes the underlying registry, mainly for tests.
func (b *Batch) Registry() *prometheus.Registry {
	return b.registry
}

// WriteToTextfile writes every metric in the Prometheus text exposition
// format to path, atomically.
func (b *Batch) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, b.registry)
}
