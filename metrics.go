package kmeanspp

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
//	    fitCounter   prometheus.Counter
//	    fitHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordFit(iterations int, converged bool, duration time.Duration, err error) {
//	    p.fitCounter.Inc()
//	    p.fitHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSeed is called after each seeding operation.
	// k is the number of seeds requested, err is nil if successful.
	RecordSeed(k int, duration time.Duration, err error)

	// RecordFit is called after each fit operation.
	// iterations and converged describe the run and are zero on error.
	RecordFit(iterations int, converged bool, duration time.Duration, err error)

	// RecordLoad is called after loading and joining input tables.
	// rows is the number of joined points.
	RecordLoad(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordFit(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedCount      atomic.Int64
	SeedErrors     atomic.Int64
	SeedTotalNanos atomic.Int64
	FitCount       atomic.Int64
	FitErrors      atomic.Int64
	FitConverged   atomic.Int64
	FitIterations  atomic.Int64
	FitTotalNanos  atomic.Int64
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadRows       atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(k int, duration time.Duration, err error) {
	b.SeedCount.Add(1)
	b.SeedTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SeedErrors.Add(1)
	}
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(iterations int, converged bool, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
		return
	}
	b.FitIterations.Add(int64(iterations))
	if converged {
		b.FitConverged.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(rows int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SeedCount:     b.SeedCount.Load(),
		SeedErrors:    b.SeedErrors.Load(),
		SeedAvgNanos:  avg(b.SeedTotalNanos.Load(), b.SeedCount.Load()),
		FitCount:      b.FitCount.Load(),
		FitErrors:     b.FitErrors.Load(),
		FitConverged:  b.FitConverged.Load(),
		FitIterations: b.FitIterations.Load(),
		FitAvgNanos:   avg(b.FitTotalNanos.Load(), b.FitCount.Load()),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadRows:      b.LoadRows.Load(),
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
	SeedCount     int64
	SeedErrors    int64
	SeedAvgNanos  int64
	FitCount      int64
	FitErrors     int64
	FitConverged  int64
	FitIterations int64
	FitAvgNanos   int64
	LoadCount     int64
	LoadErrors    int64
	LoadRows      int64
}
