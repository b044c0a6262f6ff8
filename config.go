package krow

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/krow/pkg/engine"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Default tracer name for krow applications.
const defaultTracerName = "krow"

// Config configures an application.
type Config struct {
	// Logger receives engine and dispatcher logs (default: slog.Default()).
	Logger *slog.Logger

	// Tracer creates spans around mount, unmount and command handling.
	// Default: the global provider's "krow" tracer.
	Tracer trace.Tracer

	// Observer is notified of engine activity, e.g. a metrics collector.
	Observer engine.Observer

	// Props are passed to the root component.
	Props vdom.Props
}

// Option configures an application.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithObserver sets the engine observer.
func WithObserver(o engine.Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithProps sets the root component's props.
func WithProps(p vdom.Props) Option {
	return func(c *Config) {
		c.Props = p
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Logger:   slog.Default(),
		Tracer:   otel.Tracer(defaultTracerName),
		Observer: engine.NopObserver{},
	}
}

func buildConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(defaultTracerName)
	}
	if cfg.Observer == nil {
		cfg.Observer = engine.NopObserver{}
	}
	return cfg
}

func (c Config) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithLogger(c.Logger),
		engine.WithObserver(c.Observer),
	}
}
