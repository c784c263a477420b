// Package slo tracks service level objectives for the page-serving path.
//
// A rolling window of request outcomes is maintained in memory and evaluated
// periodically (from the background scheduler) into Prometheus gauges, so
// dashboards can alert on SLO burn without PromQL gymnastics.
package slo

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
// These targets are used to measure and monitor service reliability.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// LatencyP95SLO defines the target for 95th percentile page latency in seconds (300ms)
	LatencyP95SLO = 0.300

	// LatencyP99SLO defines the target for 99th percentile page latency in seconds (800ms)
	LatencyP99SLO = 0.800

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001
)

// SLO tracking metrics
// These gauges are updated periodically by Evaluate based on the rolling
// window of recent requests.
var (
	// SLOAvailability tracks the current availability ratio (0-1)
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOLatencyP95 tracks the current p95 latency in seconds
	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 0.300",
		},
	)

	// SLOLatencyP99 tracks the current p99 latency in seconds
	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 0.800",
		},
	)

	// SLOErrorRate tracks the current error rate ratio (0-1)
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

// sample is one completed request in the rolling window.
type sample struct {
	at       time.Time
	duration float64
	isError  bool
}

// Tracker keeps a rolling window of request outcomes and evaluates them into
// the SLO gauges. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	window  time.Duration
	samples []sample
}

// NewTracker creates a tracker with the given rolling window.
// A window of 5 minutes matches the usual burn-rate alerting granularity.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Tracker{window: window}
}

// Record adds a completed request to the window. Status codes of 500 and
// above count against availability.
func (t *Tracker) Record(statusCode int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, sample{
		at:       time.Now(),
		duration: duration.Seconds(),
		isError:  statusCode >= 500,
	})
}

// Evaluate drops samples older than the window, recomputes the SLO gauges and
// returns the number of samples considered. With an empty window the gauges
// report a healthy service rather than zero availability.
func (t *Tracker) Evaluate() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-t.window)
	kept := t.samples[:0]
	for _, s := range t.samples {
		if s.at.After(cutoff) {
			kept = append(kept, s)
		}
	}
	t.samples = kept

	if len(t.samples) == 0 {
		SLOAvailability.Set(1)
		SLOErrorRate.Set(0)
		SLOLatencyP95.Set(0)
		SLOLatencyP99.Set(0)
		return 0
	}

	errors := 0
	durations := make([]float64, 0, len(t.samples))
	for _, s := range t.samples {
		if s.isError {
			errors++
		}
		durations = append(durations, s.duration)
	}
	sort.Float64s(durations)

	total := float64(len(t.samples))
	SLOAvailability.Set((total - float64(errors)) / total)
	SLOErrorRate.Set(float64(errors) / total)
	SLOLatencyP95.Set(percentile(durations, 0.95))
	SLOLatencyP99.Set(percentile(durations, 0.99))

	return len(t.samples)
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p*float64(len(sorted))+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
