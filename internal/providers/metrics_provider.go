package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"goaltracker/internal/structures"
	"time"
)

// TrackerGaugeSource is the read-only view of the tracker the gauges sample.
type TrackerGaugeSource interface {
	GoalCount() int
	ViewCount() int
	RemainingCooldown() time.Duration
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncCheckIns(accepted bool)
	IncExports(ok bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	checkIns            *prometheus.CounterVec
	exports             *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCheckIns(accepted bool) {
	m.checkIns.WithLabelValues(resultLabel(accepted, "accepted", "denied")).Inc()
}

func (m *MetricsProvider) IncExports(ok bool) {
	m.exports.WithLabelValues(resultLabel(ok, "ok", "error")).Inc()
}

func resultLabel(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, source TrackerGaugeSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goaltracker_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goaltracker_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goaltracker_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goaltracker_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "goaltracker_persistence_duration_seconds",
			Help:    "Duration of snapshot saves in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		checkIns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goaltracker_checkins_total",
			Help: "Check-in attempts by result",
		}, []string{"result"}),

		exports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goaltracker_exports_total",
			Help: "History exports by result",
		}, []string{"result"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goaltracker_goals",
		Help: "Current number of goals",
	}, func() float64 {
		return float64(source.GoalCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goaltracker_view_count",
		Help: "Total goal views",
	}, func() float64 {
		return float64(source.ViewCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goaltracker_cooldown_remaining_seconds",
		Help: "Seconds until the next check-in is allowed",
	}, func() float64 {
		return source.RemainingCooldown().Seconds()
	})

	return m
}

// NewNoopMetricsProvider is used where nothing serves /metrics, such as the
// console. It registers no collectors, so it can be built any number of times.
func NewNoopMetricsProvider() MetricsProviderInterface {
	return &noopMetrics{}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncCheckIns(_ bool)                               {}
func (n *noopMetrics) IncExports(_ bool)                                {}
