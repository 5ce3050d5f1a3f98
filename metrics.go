package hexrange

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
//	    queryHistogram prometheus.Histogram
//	    rangeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuery(cells, ranges int, duration time.Duration, err error) {
//	    p.queryHistogram.Observe(duration.Seconds())
//	    p.rangeHistogram.Observe(float64(ranges))
//	}
type MetricsCollector interface {
	// RecordQuery is called after each radius query is planned.
	// cells is the k-ring size, ranges the number of merged ranges.
	RecordQuery(cells, ranges int, duration time.Duration, err error)

	// RecordCacheHit is called when a query is answered from the range cache.
	RecordCacheHit()

	// RecordIndex is called after each single-point compaction.
	RecordIndex(duration time.Duration, err error)

	// RecordBatchIndex is called after each batch compaction.
	RecordBatchIndex(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit()                            {}
func (NoopMetricsCollector) RecordIndex(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchIndex(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	QueryTotalNanos  atomic.Int64
	QueryCells       atomic.Int64
	QueryRanges      atomic.Int64
	CacheHits        atomic.Int64
	IndexCount       atomic.Int64
	IndexErrors      atomic.Int64
	BatchIndexCount  atomic.Int64
	BatchIndexItems  atomic.Int64
	BatchIndexErrors atomic.Int64
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(cells, ranges int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryCells.Add(int64(cells))
	b.QueryRanges.Add(int64(ranges))
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(_ time.Duration, err error) {
	b.IndexCount.Add(1)
	if err != nil {
		b.IndexErrors.Add(1)
	}
}

// RecordBatchIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchIndex(count int, _ time.Duration, err error) {
	b.BatchIndexCount.Add(1)
	b.BatchIndexItems.Add(int64(count))
	if err != nil {
		b.BatchIndexErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		QueryCount:      b.QueryCount.Load(),
		QueryErrors:     b.QueryErrors.Load(),
		CacheHits:       b.CacheHits.Load(),
		IndexCount:      b.IndexCount.Load(),
		IndexErrors:     b.IndexErrors.Load(),
		BatchIndexCount: b.BatchIndexCount.Load(),
		BatchIndexItems: b.BatchIndexItems.Load(),
	}

	if ok := stats.QueryCount - stats.QueryErrors; ok > 0 {
		stats.AvgRangesPerQuery = float64(b.QueryRanges.Load()) / float64(ok)
		stats.AvgCellsPerQuery = float64(b.QueryCells.Load()) / float64(ok)
	}
	if stats.QueryCount > 0 {
		stats.QueryAvgLatency = time.Duration(b.QueryTotalNanos.Load() / stats.QueryCount)
	}

	return stats
}

// MetricsStats is a snapshot of BasicMetricsCollector counters.
type MetricsStats struct {
	QueryCount        int64
	QueryErrors       int64
	QueryAvgLatency   time.Duration
	AvgCellsPerQuery  float64
	AvgRangesPerQuery float64
	CacheHits         int64
	IndexCount        int64
	IndexErrors       int64
	BatchIndexCount   int64
	BatchIndexItems   int64
}
