package providers

import (
	"goaltracker/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gaugeTestSource struct{}

func (gaugeTestSource) GoalCount() int                   { return 3 }
func (gaugeTestSource) ViewCount() int                   { return 7 }
func (gaugeTestSource) RemainingCooldown() time.Duration { return 90 * time.Second }

func useTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, gaugeTestSource{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncCheckIns(true)
	m.IncExports(false)
}

func TestNoopMetricsProvider_RepeatedBuilds(t *testing.T) {
	useTestRegistry(t)
	assert.NotPanics(t, func() {
		for range 3 {
			NewNoopMetricsProvider().IncCheckIns(true)
		}
	})
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, gaugeTestSource{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_CountersAndGauges(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, gaugeTestSource{})

	m.IncRequestsTotal("/state", 200)
	m.IncRequestsTotal("/check", 409)
	m.ObserveRequestDuration("/state", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.IncCheckIns(true)
	m.IncCheckIns(false)
	m.IncCheckIns(false)
	m.IncExports(true)

	families, err := reg.Gather()
	require.NoError(t, err)
	gauges := map[string]float64{}
	checkIns := map[string]float64{}
	for _, f := range families {
		switch f.GetName() {
		case "goaltracker_checkins_total":
			for _, metric := range f.GetMetric() {
				checkIns[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
			}
		case "goaltracker_goals", "goaltracker_view_count", "goaltracker_cooldown_remaining_seconds":
			gauges[f.GetName()] = f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(1), checkIns["accepted"])
	assert.Equal(t, float64(2), checkIns["denied"])
	assert.Equal(t, float64(3), gauges["goaltracker_goals"])
	assert.Equal(t, float64(7), gauges["goaltracker_view_count"])
	assert.Equal(t, float64(90), gauges["goaltracker_cooldown_remaining_seconds"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{409, "4xx"},
		{428, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
