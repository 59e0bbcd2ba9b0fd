// Package metrics exposes Prometheus metrics for chart rendering.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets the buckets of the render duration histogram, in
// seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry sets the registry that metrics are registered to and gathered
// from.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Manager holds the render metrics.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	points         prometheus.Gauge
	skippedRows    prometheus.Counter
}

// NewManager creates a Manager. Unless WithRegistry is given, a fresh registry
// is used, so the process-wide default registry is never touched.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "hillchart",
		buckets:   prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "renders_total",
		Help:      "Total number of rendered charts by output format.",
	}, []string{"format"})

	m.renderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent reading, laying out and encoding a chart.",
		Buckets:   m.buckets,
	}, []string{"format"})

	m.renderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "render_errors_total",
		Help:      "Total number of failed renders by output format.",
	}, []string{"format"})

	m.points = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_render_points",
		Help:      "Number of markers in the last rendered chart.",
	})

	m.skippedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "skipped_rows_total",
		Help:      "Total number of rows dropped for having an unusable progress value.",
	})

	return m
}

// ObserveRender records a successful render.
func (m *Manager) ObserveRender(format string, points int, d time.Duration) {
	m.renders.WithLabelValues(format).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	m.points.Set(float64(points))
}

// ObserveError records a failed render.
func (m *Manager) ObserveError(format string) {
	m.renderErrors.WithLabelValues(format).Inc()
}

// ObserveSkipped records rows dropped during the transform.
func (m *Manager) ObserveSkipped(n int) {
	if n > 0 {
		m.skippedRows.Add(float64(n))
	}
}

// Registry returns the registry the metrics are registered to.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
