package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the calendar oracle.
type Metrics struct {
	// Snapshot cache outcomes
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Holiday store fetch latency
	FetchLatency prometheus.Histogram
}

// New creates a Metrics instance with all calendar metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prazo_calendar_snapshot_cache_hits_total",
			Help: "Holiday snapshot cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prazo_calendar_snapshot_cache_misses_total",
			Help: "Holiday snapshot cache misses",
		}),
		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prazo_calendar_holiday_fetch_duration_seconds",
			Help:    "Duration of holiday store fetches per (year, state)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordHit counts a snapshot cache hit.
func (m *Metrics) RecordHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// RecordMiss counts a snapshot cache miss.
func (m *Metrics) RecordMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// ObserveFetch records the duration of one holiday store fetch.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m != nil {
		m.FetchLatency.Observe(d.Seconds())
	}
}
