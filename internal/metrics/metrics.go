// Package metrics exposes render pipeline counters via Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the indicator pipeline instrumentation. A nil *Metrics
// is valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	registry *prometheus.Registry

	rendered       *prometheus.CounterVec
	dropped        prometheus.Counter
	queueDepth     prometheus.Gauge
	renderDuration prometheus.Histogram
}

// New creates a metrics set backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blinkd_patterns_rendered_total",
			Help: "Patterns rendered to completion, by kind.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blinkd_patterns_dropped_total",
			Help: "Patterns dropped because the blink queue was full.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blinkd_queue_depth",
			Help: "Patterns currently waiting in the blink queue.",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blinkd_render_duration_seconds",
			Help:    "Wall time spent rendering one pattern.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	registry.MustRegister(m.rendered, m.dropped, m.queueDepth, m.renderDuration)
	return m
}

// ObserveRender records a completed render of the given kind.
func (m *Metrics) ObserveRender(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(kind).Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}

// IncDropped records a drop at enqueue time.
func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

// SetQueueDepth records the current queue occupancy.
func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// Handler returns an HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
