// Package prommetrics exports quadtree build and query measurements as
// Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.New(reg, "myapp")
//	cfg := quadtree.DefaultConfig()
//	cfg.Metrics = c
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TrevorS/quadtree"
)

var _ quadtree.MetricsCollector = (*Collector)(nil)

// Collector implements quadtree.MetricsCollector.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	treeNodes     prometheus.Gauge
	treePoints    prometheus.Gauge

	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	nodesVisited  prometheus.Histogram
	resultSize    prometheus.Histogram
}

// New creates a Collector and registers its metrics with reg under the given
// namespace. Pass prometheus.DefaultRegisterer to use the global registry.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "builds_total",
			Help:      "Total number of tree builds by status",
		}, []string{"status"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "build_duration_seconds",
			Help:      "Tree build duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		treeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "nodes",
			Help:      "Number of nodes in the most recently built tree",
		}),
		treePoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "points",
			Help:      "Number of points in the most recently built tree",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "queries_total",
			Help:      "Total number of kNN queries by status",
		}, []string{"status"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "query_duration_seconds",
			Help:      "kNN query duration in seconds",
			Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		nodesVisited: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "query_nodes_visited",
			Help:      "Nodes taken off the search queue per kNN query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		resultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quadtree",
			Name:      "query_results",
			Help:      "Neighbors returned per kNN query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.builds, c.buildDuration, c.treeNodes, c.treePoints,
		c.queries, c.queryDuration, c.nodesVisited, c.resultSize,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements quadtree.MetricsCollector.
func (c *Collector) RecordBuild(points, nodes int, duration time.Duration, err error) {
	c.builds.WithLabelValues(status(err)).Inc()
	c.buildDuration.Observe(duration.Seconds())
	if err == nil {
		c.treeNodes.Set(float64(nodes))
		c.treePoints.Set(float64(points))
	}
}

// RecordQuery implements quadtree.MetricsCollector.
func (c *Collector) RecordQuery(k, results, visited int, duration time.Duration, err error) {
	c.queries.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	c.queryDuration.Observe(duration.Seconds())
	c.nodesVisited.Observe(float64(visited))
	c.resultSize.Observe(float64(results))
}
