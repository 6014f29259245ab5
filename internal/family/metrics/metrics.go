package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the family lookup pipeline.
type Metrics struct {
	// Stage durations: authenticate, lookup, enrich, decode, aggregate
	StageLatency *prometheus.HistogramVec

	// Lookup outcomes by error code ("ok" on success)
	LookupOutcome *prometheus.CounterVec

	// Overall lookup latency, cache hits included
	LookupLatency prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Lookups rejected while the backend breaker was open
	BreakerRejections prometheus.Counter
}

// New registers the pipeline metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the pipeline metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StageLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "famcard_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),

		LookupOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "famcard_lookup_outcomes_total",
			Help: "Total family lookups by outcome",
		}, []string{"outcome"}),

		LookupLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "famcard_lookup_duration_seconds",
			Help:    "Duration of a full family lookup",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "famcard_cache_hits_total",
			Help: "Family lookups served from cache",
		}),

		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "famcard_cache_misses_total",
			Help: "Family lookups that missed the cache",
		}),

		BreakerRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "famcard_breaker_rejections_total",
			Help: "Family lookups rejected while the backend circuit was open",
		}),
	}
}

// ObserveStage records the duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementOutcome records how a lookup ended.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) RecordBreakerRejection() {
	if m != nil {
		m.BreakerRejections.Inc()
	}
}
