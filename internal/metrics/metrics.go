// Package metrics exposes Prometheus collectors for intents, sessions and
// ledger storage.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "krispyledger"

// Metrics holds the service collectors.
type Metrics struct {
	intents        *prometheus.CounterVec
	storeDuration  *prometheus.HistogramVec
	activeSessions prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intents_total",
				Help:      "Intents handled, by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_seconds",
				Help:      "Ledger store latency, by operation and result.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Conversations with a live dialog session.",
			},
		),
	}
	reg.MustRegister(m.intents, m.storeDuration, m.activeSessions)
	return m
}

// ObserveIntent counts one handled intent.
func (m *Metrics) ObserveIntent(kind, outcome string) {
	m.intents.WithLabelValues(kind, outcome).Inc()
}

// SetActiveSessions records the live session count.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// ObserveStoreOperation records the latency of one store call.
func (m *Metrics) ObserveStoreOperation(op, result string, elapsed time.Duration) {
	m.storeDuration.WithLabelValues(op, result).Observe(elapsed.Seconds())
}
