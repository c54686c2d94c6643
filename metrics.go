package quadtree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives build and query measurements.
// Implement it to feed a monitoring system; see package prommetrics for a
// Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called once per Build. nodes is 0 when err is non-nil.
	RecordBuild(points, nodes int, duration time.Duration, err error)

	// RecordQuery is called after each QueryKNN, including those issued by
	// QueryBatch. visited is the number of nodes taken off the queue.
	RecordQuery(k, results, visited int, duration time.Duration, err error)
}

// NoopMetricsCollector discards all measurements.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordQuery(int, int, int, time.Duration, error) {}

// BasicMetricsCollector keeps in-memory totals. Safe for concurrent use.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	NodesVisited    atomic.Int64
	ResultsReturned atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points, nodes int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(k, results, visited int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.NodesVisited.Add(int64(visited))
	b.ResultsReturned.Add(int64(results))
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	QueryCount      int64
	QueryErrors     int64
	QueryAvgNanos   int64
	NodesVisited    int64
	ResultsReturned int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	st := BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		QueryCount:      b.QueryCount.Load(),
		QueryErrors:     b.QueryErrors.Load(),
		NodesVisited:    b.NodesVisited.Load(),
		ResultsReturned: b.ResultsReturned.Load(),
	}
	if st.QueryCount > 0 {
		st.QueryAvgNanos = b.QueryTotalNanos.Load() / st.QueryCount
	}
	return st
}
