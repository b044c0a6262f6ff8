// Package metrics exposes engine and preview activity as Prometheus metrics.
//
// A Collector implements engine.Observer, so it can be handed to an engine or
// an application directly:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	app := krow.NewApp(dom, root, krow.WithObserver(m))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// MetricsConfig configures the collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "krow").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event handling duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the collectors.
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
		Namespace: "krow",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the krow metrics.
type Collector struct {
	mounts        *prometheus.CounterVec
	destroys      *prometheus.CounterVec
	patches       *prometheus.CounterVec
	renders       *prometheus.CounterVec
	jobFailures   prometheus.Counter
	surfaceWrites *prometheus.CounterVec
	eventDuration prometheus.Histogram
	framesSent    prometheus.Counter
	frameBytes    prometheus.Counter
	activeClients prometheus.Gauge
}

// New registers the collectors.
func New(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	return &Collector{
		mounts: factory.NewCounterVec(
			counterOpts("mounts_total", "Virtual nodes mounted, by kind"),
			[]string{"kind"}),
		destroys: factory.NewCounterVec(
			counterOpts("destroys_total", "Virtual nodes destroyed, by kind"),
			[]string{"kind"}),
		patches: factory.NewCounterVec(
			counterOpts("patches_total", "Virtual nodes patched, by kind and result"),
			[]string{"kind", "result"}),
		renders: factory.NewCounterVec(
			counterOpts("renders_total", "Component renders, by component"),
			[]string{"component"}),
		jobFailures: factory.NewCounter(
			counterOpts("deferred_job_failures_total", "Deferred lifecycle jobs that returned an error")),
		surfaceWrites: factory.NewCounterVec(
			counterOpts("surface_writes_total", "Writes applied to the live surface, by operation"),
			[]string{"op"}),
		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Time spent handling a browser event, including re-render",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		framesSent: factory.NewCounter(
			counterOpts("frames_sent_total", "Op frames sent to preview clients")),
		frameBytes: factory.NewCounter(
			counterOpts("frame_bytes_total", "Bytes of op frames sent to preview clients")),
		activeClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Connected preview clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (c *Collector) Mounted(kind vdom.Kind) {
	c.mounts.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Destroyed(kind vdom.Kind) {
	c.destroys.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Patched(kind vdom.Kind, reused bool) {
	result := "replaced"
	if reused {
		result = "reused"
	}
	c.patches.WithLabelValues(kind.String(), result).Inc()
}

func (c *Collector) Rendered(component string) {
	c.renders.WithLabelValues(component).Inc()
}

func (c *Collector) JobFailed(error) {
	c.jobFailures.Inc()
}

// RecordOps counts a batch of journaled surface writes.
func (c *Collector) RecordOps(ops []surface.Op) {
	for _, op := range ops {
		c.surfaceWrites.WithLabelValues(string(op.Kind)).Inc()
	}
}

// RecordFrame counts one frame of n bytes sent to a preview client.
func (c *Collector) RecordFrame(n int) {
	c.framesSent.Inc()
	c.frameBytes.Add(float64(n))
}

// ObserveEvent records how long handling one browser event took.
func (c *Collector) ObserveEvent(d time.Duration) {
	c.eventDuration.Observe(d.Seconds())
}

// ClientConnected increments the connected client gauge.
func (c *Collector) ClientConnected() { c.activeClients.Inc() }

// ClientDisconnected decrements the connected client gauge.
func (c *Collector) ClientDisconnected() { c.activeClients.Dec() }
