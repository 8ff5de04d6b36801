package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by the site.
type Metrics struct {
	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	Resolutions    *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_renders_total",
				Help: "Total number of page renders",
			},
			[]string{"format", "outcome"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "overlay_render_duration_seconds",
				Help:    "Duration of page renders",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"format"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_component_resolutions_total",
				Help: "Component map resolutions, by whether the memoized map was reused",
			},
			[]string{"result"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_cache_lookups_total",
				Help: "Rendered page cache lookups",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.RenderDuration, m.Resolutions, m.CacheLookups)
	}
	return m
}

// ObserveRender records one traversal. Nil receivers are no-ops.
func (m *Metrics) ObserveRender(format string, resolved, reused int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Renders.WithLabelValues(format, outcome).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	m.Resolutions.WithLabelValues("fresh").Add(float64(resolved))
	m.Resolutions.WithLabelValues("reused").Add(float64(reused))
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
