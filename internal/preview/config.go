package preview

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Config configures the preview server.
type Config struct {
	// Addr is the listen address for Run.
	// Default: "localhost:7070"
	Addr string

	// DefaultDemo is where / redirects to.
	// Default: "todos"
	DefaultDemo string

	// Pretty makes JSON the default frame format.
	Pretty bool

	// Namespace prefixes the exported metrics.
	// Default: "krow"
	Namespace string

	// Registry receives the server's metrics and backs /metrics.
	// Default: a new registry with the Go and process collectors.
	Registry *prometheus.Registry

	// DisableMetrics removes the /metrics route. Collectors still run.
	DisableMetrics bool

	// PingInterval is how often connections are pinged.
	// Default: 30s
	PingInterval time.Duration

	// PongWait is how long a connection may stay silent.
	// Default: 60s
	PongWait time.Duration

	// WriteTimeout bounds a single frame write.
	// Default: 10s
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration

	// MaxMessageSize limits inbound messages.
	// Default: 64KB
	MaxMessageSize int64

	// CheckOrigin validates WebSocket origins. nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool

	// Tracer records a span per client event.
	// Default: the global provider's "krow/preview" tracer
	Tracer trace.Tracer

	// Logger receives server and session logs.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:7070",
		DefaultDemo:     "todos",
		Namespace:       "krow",
		PingInterval:    30 * time.Second,
		PongWait:        60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxMessageSize:  64 * 1024,
	}
}

// withDefaults returns a copy of c with zero fields filled in.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		c = defaults
	}
	out := *c
	if out.Addr == "" {
		out.Addr = defaults.Addr
	}
	if out.DefaultDemo == "" {
		out.DefaultDemo = defaults.DefaultDemo
	}
	if out.Namespace == "" {
		out.Namespace = defaults.Namespace
	}
	if out.PingInterval <= 0 {
		out.PingInterval = defaults.PingInterval
	}
	if out.PongWait <= 0 {
		out.PongWait = defaults.PongWait
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = defaults.MaxMessageSize
	}
	if out.Tracer == nil {
		out.Tracer = defaultTracer()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
