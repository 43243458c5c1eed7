package voxgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    applyHistogram *prometheus.HistogramVec // labeled by transform
//	}
//
//	func (p *PrometheusCollector) RecordApply(transform string, duration time.Duration, err error) {
//	    p.applyHistogram.WithLabelValues(transform).Observe(duration.Seconds())
//	    // ... record error state, etc.
//	}
type MetricsCollector interface {
	// RecordApply is called after each transform application.
	// transform is the transform name, duration is the total time taken,
	// err is nil if successful.
	RecordApply(transform string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordApply(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// Counters are aggregated over all transforms; use a labeled collector for
// per-transform breakdowns.
type BasicMetricsCollector struct {
	ApplyCount      atomic.Int64
	ApplyErrors     atomic.Int64
	ApplyTotalNanos atomic.Int64
}

// RecordApply implements MetricsCollector.
func (b *BasicMetricsCollector) RecordApply(transform string, duration time.Duration, err error) {
	b.ApplyCount.Add(1)
	b.ApplyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ApplyErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ApplyCount:    b.ApplyCount.Load(),
		ApplyErrors:   b.ApplyErrors.Load(),
		ApplyAvgNanos: b.getAvgApplyNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgApplyNanos() int64 {
	count := b.ApplyCount.Load()
	if count == 0 {
		return 0
	}
	return b.ApplyTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ApplyCount    int64
	ApplyErrors   int64
	ApplyAvgNanos int64
}
