package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics receives limiter events. The server wires PrometheusMetrics;
// tests and tools run with NoopMetrics.
type Metrics interface {
	RecordAllowed(key string)
	RecordDenied(key string)
	RecordEviction()
	SetTrackedKeys(count int)
}

// NoopMetrics discards all limiter events.
type NoopMetrics struct{}

func (NoopMetrics) RecordAllowed(string) {}
func (NoopMetrics) RecordDenied(string)  {}
func (NoopMetrics) RecordEviction()      {}
func (NoopMetrics) SetTrackedKeys(int)   {}

// PrometheusMetrics exports limiter counters on a registry. Keys are
// client IPs and never become label values; only aggregate counts leave
// the process.
type PrometheusMetrics struct {
	decisionsTotal *prometheus.CounterVec
	evictionsTotal prometheus.Counter
	trackedKeys    prometheus.Gauge
}

// NewPrometheusMetrics creates limiter metrics registered on reg. Pass
// prometheus.DefaultRegisterer in the server, a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_decisions_total",
				Help: "Rate limit decisions by outcome.",
			},
			[]string{"outcome"},
		),
		evictionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ratelimit_evictions_total",
				Help: "Client keys evicted because the tracking table was full.",
			},
		),
		trackedKeys: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ratelimit_tracked_keys",
				Help: "Client keys currently tracked, sampled at cleanup.",
			},
		),
	}
	reg.MustRegister(m.decisionsTotal, m.evictionsTotal, m.trackedKeys)
	return m
}

// RecordAllowed counts one admitted request.
func (m *PrometheusMetrics) RecordAllowed(string) {
	m.decisionsTotal.WithLabelValues("allowed").Inc()
}

// RecordDenied counts one rejected request.
func (m *PrometheusMetrics) RecordDenied(string) {
	m.decisionsTotal.WithLabelValues("denied").Inc()
}

// RecordEviction counts one capacity eviction.
func (m *PrometheusMetrics) RecordEviction() {
	m.evictionsTotal.Inc()
}

// SetTrackedKeys samples the tracking table size.
func (m *PrometheusMetrics) SetTrackedKeys(count int) {
	m.trackedKeys.Set(float64(count))
}
