package voxgo

import (
	"log/slog"
)

type options struct {
	grad             bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures transform construction.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. instrumented constructor variants per transform).
//
// Breaking changes are expected while voxgo is pre-release.
type Option func(*options)

// WithGrad marks the transform's outputs as gradient-relevant. The flag is
// carried verbatim through Grad() for downstream stages; transforms here
// never act on it. Defaults to false.
func WithGrad(grad bool) Option {
	return func(o *options) {
		o.grad = grad
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// transform applications.
//
// If nil is passed, NoopMetricsCollector is used.
//
// Example with BasicMetricsCollector:
//
//	metrics := &voxgo.BasicMetricsCollector{}
//	t := voxgo.PopKeys(record.Keys{"debug"}, voxgo.WithMetricsCollector(metrics))
//	// ... apply t ...
//	stats := metrics.GetStats()
//	fmt.Printf("Applies: %d, Avg latency: %dns\n", stats.ApplyCount, stats.ApplyAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for transform applications.
//
// If nil is passed, NoopLogger is used.
//
// Example with JSON logging:
//
//	logger := voxgo.NewJSONLogger(slog.LevelInfo)
//	t := voxgo.FilterKeys(record.Keys{"image", "seg"}, voxgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
