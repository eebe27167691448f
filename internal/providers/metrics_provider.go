package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"focusd/internal/structures"
)

type MetricsProviderInterface interface {
	IncSegmentsRecorded()
	IncSegmentsQueued()
	IncSegmentsDropped()
	IncMicroBreaks()
	IncInvalidTransitions(command string)
	ObservePersistenceDuration(duration time.Duration)
	ObserveAggregateDuration(granularity string, duration time.Duration)
	SetPendingSegments(count int)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	segmentsRecorded    prometheus.Counter
	segmentsQueued      prometheus.Counter
	segmentsDropped     prometheus.Counter
	microBreaks         prometheus.Counter
	invalidTransitions  *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	aggregateDuration   *prometheus.HistogramVec
	pendingSegments     prometheus.Gauge
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
}

func (m *MetricsProvider) IncSegmentsRecorded() { m.segmentsRecorded.Inc() }
func (m *MetricsProvider) IncSegmentsQueued()  { m.segmentsQueued.Inc() }
func (m *MetricsProvider) IncSegmentsDropped() { m.segmentsDropped.Inc() }
func (m *MetricsProvider) IncMicroBreaks()     { m.microBreaks.Inc() }

func (m *MetricsProvider) IncInvalidTransitions(command string) {
	m.invalidTransitions.WithLabelValues(command).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveAggregateDuration(granularity string, duration time.Duration) {
	m.aggregateDuration.WithLabelValues(granularity).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetPendingSegments(count int) {
	m.pendingSegments.Set(float64(count))
}

func (m *MetricsProvider) IncCacheHits()   { m.cacheHits.Inc() }
func (m *MetricsProvider) IncCacheMisses() { m.cacheMisses.Inc() }

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		segmentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_segments_recorded_total",
			Help: "Total number of study segments persisted",
		}),

		segmentsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_segments_queued_total",
			Help: "Total number of study segments queued after a storage failure",
		}),

		segmentsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_segments_dropped_total",
			Help: "Total number of zero-duration or inverted segments dropped",
		}),

		microBreaks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_micro_breaks_total",
			Help: "Total number of micro-break reminders fired",
		}),

		invalidTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "focusd_invalid_transitions_total",
			Help: "Total number of rejected timer commands",
		}, []string{"command"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "focusd_persistence_duration_seconds",
			Help:    "Duration of segment persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		aggregateDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "focusd_aggregate_duration_seconds",
			Help:    "Duration of aggregate queries in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"granularity"}),

		pendingSegments: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "focusd_pending_segments",
			Help: "Current number of segments waiting for a successful flush",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_cache_hits_total",
			Help: "Total number of aggregate cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "focusd_cache_misses_total",
			Help: "Total number of aggregate cache misses",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncSegmentsRecorded()                               {}
func (n *noopMetrics) IncSegmentsQueued()                                 {}
func (n *noopMetrics) IncSegmentsDropped()                                {}
func (n *noopMetrics) IncMicroBreaks()                                    {}
func (n *noopMetrics) IncInvalidTransitions(_ string)                     {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)         {}
func (n *noopMetrics) ObserveAggregateDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetPendingSegments(_ int)                           {}
func (n *noopMetrics) IncCacheHits()                                      {}
func (n *noopMetrics) IncCacheMisses()                                    {}
