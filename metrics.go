package multiomics

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordValidate is called after each modality validation.
	RecordValidate(modality string, duration time.Duration, err error)

	// RecordReduce is called after each per-modality reduction.
	// components is the effective component count used.
	RecordReduce(modality string, components int, duration time.Duration, err error)

	// RecordIntegrate is called after each full pipeline run.
	// modalities is the number of input datasets, retained the number
	// of samples in the joint embedding (0 on failure).
	RecordIntegrate(modalities, retained int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordValidate(string, time.Duration, error)    {}
func (NoopMetricsCollector) RecordReduce(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIntegrate(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ValidateCount       atomic.Int64
	ValidateErrors      atomic.Int64
	ReduceCount         atomic.Int64
	ReduceErrors        atomic.Int64
	ReduceTotalNanos    atomic.Int64
	IntegrateCount      atomic.Int64
	IntegrateErrors     atomic.Int64
	IntegrateTotalNanos atomic.Int64
	RetainedSamples     atomic.Int64
}

// RecordValidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidate(modality string, duration time.Duration, err error) {
	b.ValidateCount.Add(1)
	if err != nil {
		b.ValidateErrors.Add(1)
	}
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(modality string, components int, duration time.Duration, err error) {
	b.ReduceCount.Add(1)
	b.ReduceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReduceErrors.Add(1)
	}
}

// RecordIntegrate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntegrate(modalities, retained int, duration time.Duration, err error) {
	b.IntegrateCount.Add(1)
	b.IntegrateTotalNanos.Add(duration.Nanoseconds())
	b.RetainedSamples.Add(int64(retained))
	if err != nil {
		b.IntegrateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ValidateCount:     b.ValidateCount.Load(),
		ValidateErrors:    b.ValidateErrors.Load(),
		ReduceCount:       b.ReduceCount.Load(),
		ReduceErrors:      b.ReduceErrors.Load(),
		ReduceAvgNanos:    avg(b.ReduceTotalNanos.Load(), b.ReduceCount.Load()),
		IntegrateCount:    b.IntegrateCount.Load(),
		IntegrateErrors:   b.IntegrateErrors.Load(),
		IntegrateAvgNanos: avg(b.IntegrateTotalNanos.Load(), b.IntegrateCount.Load()),
		RetainedSamples:   b.RetainedSamples.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ValidateCount     int64
	ValidateErrors    int64
	ReduceCount       int64
	ReduceErrors      int64
	ReduceAvgNanos    int64
	IntegrateCount    int64
	IntegrateErrors   int64
	IntegrateAvgNanos int64
	RetainedSamples   int64
}
