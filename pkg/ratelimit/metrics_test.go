package ratelimit_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"fresh-motors-web/pkg/ratelimit"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if matchLabels(m, labels) {
				if m.GetCounter() != nil {
					return m.GetCounter().GetValue()
				}
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *io_prometheus_client.Metric, want map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestPrometheusMetricsCountsDecisions(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := ratelimit.NewPrometheusMetrics(reg)

	l := ratelimit.New(ratelimit.Config{
		Limit:   1,
		Window:  time.Minute,
		Metrics: metrics,
	})

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.1")
	l.Allow("10.0.0.1")

	allowed := counterValue(t, reg, "ratelimit_decisions_total", map[string]string{"outcome": "allowed"})
	denied := counterValue(t, reg, "ratelimit_decisions_total", map[string]string{"outcome": "denied"})

	assert.Equal(t, 1.0, allowed)
	assert.Equal(t, 2.0, denied)
}

func TestPrometheusMetricsTracksKeys(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := ratelimit.NewPrometheusMetrics(reg)

	l := ratelimit.New(ratelimit.Config{
		Limit:   5,
		Window:  time.Minute,
		Metrics: metrics,
	})

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	l.Cleanup() // samples the gauge

	tracked := counterValue(t, reg, "ratelimit_tracked_keys", nil)
	assert.Equal(t, 2.0, tracked)
}
