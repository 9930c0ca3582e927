// Package prometheus exports basket operation metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements basket.Recorder with a counter per operation and outcome
// and a latency histogram per operation.
type Recorder struct {
	operations *prometheus.CounterVec
	latencyMS  *prometheus.HistogramVec
}

// NewRecorder registers the collectors with registerer.
// Registering twice on the same registerer panics.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "basket",
		Subsystem: "orchestrator",
		Name:      "operations_total",
		Help:      "Total number of basket operations by outcome.",
	}, []string{"operation", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "basket",
		Subsystem: "orchestrator",
		Name:      "operation_duration_ms",
		Help:      "Basket operation latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"operation"})

	registerer.MustRegister(operations, latency)
	return &Recorder{operations: operations, latencyMS: latency}
}

// Observe counts the call under its outcome and records its latency.
func (r *Recorder) Observe(operation, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.latencyMS.WithLabelValues(operation).Observe(float64(elapsed) / float64(time.Millisecond))
}
