package hooks

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the hook metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "uihooks").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for async run duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the hook metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "uihooks",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors the hooks report to.
type Metrics struct {
	listenersAttached *prometheus.CounterVec
	listenersDetached *prometheus.CounterVec
	listenersActive   prometheus.Gauge
	asyncRuns         *prometheus.CounterVec
	asyncDuration     *prometheus.HistogramVec
	outsideClicks     *prometheus.CounterVec
}

var activeMetrics atomic.Pointer[Metrics]

// EnableMetrics registers the hook collectors and starts recording.
//
// Metrics collected:
//   - uihooks_listeners_attached_total: Counter of subscriptions by event type
//   - uihooks_listeners_detached_total: Counter of teardowns by event type
//   - uihooks_listeners_active: Gauge of live subscriptions
//   - uihooks_async_runs_total: Counter of settled runs by name and outcome
//   - uihooks_async_run_duration_seconds: Histogram of run duration by name
//   - uihooks_outside_clicks_total: Counter of document clicks by verdict
//
// Calling EnableMetrics again replaces the active collectors; register each
// set with its own registry. It panics if the collectors are already
// registered with the chosen registry.
//
// Example:
//
//	hooks.EnableMetrics(hooks.WithNamespace("dashboard"))
//	http.Handle("/metrics", promhttp.Handler())
func EnableMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)
	activeMetrics.Store(m)
	return m
}

// DisableMetrics stops recording. Registered collectors keep their values.
func DisableMetrics() {
	activeMetrics.Store(nil)
}

func newMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		listenersAttached: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_attached_total",
			Help:        "Total number of event subscriptions attached",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		listenersDetached: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_detached_total",
			Help:        "Total number of event subscriptions detached",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		listenersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_active",
			Help:        "Number of live event subscriptions",
			ConstLabels: config.ConstLabels,
		}),

		asyncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "async_runs_total",
			Help:        "Total number of settled async runs",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "outcome"}),

		asyncDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "async_run_duration_seconds",
			Help:        "Async operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"name"}),

		outsideClicks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "outside_clicks_total",
			Help:        "Document clicks seen by outside-click detectors, by verdict",
			ConstLabels: config.ConstLabels,
		}, []string{"verdict"}),
	}
}

func recordListenerAttach(eventType string) {
	if m := activeMetrics.Load(); m != nil {
		m.listenersAttached.WithLabelValues(eventType).Inc()
		m.listenersActive.Inc()
	}
}

func recordListenerDetach(eventType string) {
	if m := activeMetrics.Load(); m != nil {
		m.listenersDetached.WithLabelValues(eventType).Inc()
		m.listenersActive.Dec()
	}
}

func recordAsyncRun(name, outcome string, d time.Duration) {
	if m := activeMetrics.Load(); m != nil {
		m.asyncRuns.WithLabelValues(name, outcome).Inc()
		m.asyncDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}

func recordOutsideClick(verdict string) {
	if m := activeMetrics.Load(); m != nil {
		m.outsideClicks.WithLabelValues(verdict).Inc()
	}
}
