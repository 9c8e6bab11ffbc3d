// Package metrics exposes prometheus instrumentation for key generation and file operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cryptomorph"

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder collects operation counters and key generation latency.
type Recorder struct {
	operations    *prometheus.CounterVec
	keyGeneration *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Number of cryptographic file operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		keyGeneration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rsa",
			Name:      "key_generation_duration_seconds",
			Help:      "Time spent generating RSA key pairs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"bits"}),
	}

	for _, c := range []prometheus.Collector{r.operations, r.keyGeneration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveOperation counts one operation with its outcome derived from err.
func (r *Recorder) ObserveOperation(operation string, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveKeyGeneration records the duration of a key generation run.
func (r *Recorder) ObserveKeyGeneration(bits string, took time.Duration) {
	if r == nil {
		return
	}
	r.keyGeneration.WithLabelValues(bits).Observe(took.Seconds())
}
