package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ResolverMetrics instruments the acquisition chain: one counter increment
// per attempt, one duration observation per resolution, plus a counter for
// synthetic degradations.
type ResolverMetrics struct {
	AttemptsTotal   *prometheus.CounterVec
	ResolveDuration *prometheus.HistogramVec
	FallbackTotal   prometheus.Counter
}

// NewResolverMetrics registers the metric set with reg. Tests pass a fresh
// prometheus.NewRegistry to stay isolated.
func NewResolverMetrics(reg prometheus.Registerer) *ResolverMetrics {
	f := promauto.With(reg)
	return &ResolverMetrics{
		AttemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_source_attempts_total",
				Help: "Acquisition attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		ResolveDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_resolve_duration_seconds",
				Help:    "Time to resolve a quote, by winning source",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"source"},
		),
		FallbackTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_fallback_total",
				Help: "Resolutions that degraded to the synthetic fallback",
			},
		),
	}
}

// Attempt records one strategy attempt. Safe on a nil receiver.
func (m *ResolverMetrics) Attempt(strategy, outcome string, _ time.Duration) {
	if m == nil {
		return
	}
	m.AttemptsTotal.WithLabelValues(strategy, outcome).Inc()
}

// Resolved records the final resolution for one request.
func (m *ResolverMetrics) Resolved(source string, real bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ResolveDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if !real {
		m.FallbackTotal.Inc()
	}
}
