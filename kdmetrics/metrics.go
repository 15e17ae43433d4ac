// Package kdmetrics instruments kdtree indexes with Prometheus metrics:
// query counts and outcomes, latency, and for KD-trees the number of nodes
// each query visited, which shows how much of the tree pruning skipped.
package kdmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TrevorS/kdtree"
)

// Operation label values.
const (
	OpNearest = "nearest"
	OpKNN     = "knn"
	OpRange   = "range"
)

// Metrics holds the collectors shared by every wrapped index.
type Metrics struct {
	queries  *prometheus.CounterVec   // index, op, outcome
	duration *prometheus.HistogramVec // index, op
	visited  *prometheus.HistogramVec // index, op
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kdtree",
			Name:      "queries_total",
			Help:      "Total number of spatial queries by index, operation and outcome.",
		}, []string{"index", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kdtree",
			Name:      "query_duration_seconds",
			Help:      "Spatial query latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"index", "op"}),
		visited: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kdtree",
			Name:      "visited_nodes",
			Help:      "Tree nodes visited per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"index", "op"}),
	}

	for _, c := range []prometheus.Collector{m.queries, m.duration, m.visited} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Wrap returns idx instrumented under the given index label. Queries
// against a *kdtree.KDTree also record visited-node counts.
func (m *Metrics) Wrap(name string, idx kdtree.Index) *Instrumented {
	in := &Instrumented{name: name, next: idx, m: m, now: time.Now}
	if t, ok := idx.(*kdtree.KDTree); ok {
		in.tree = t
	}
	return in
}

// Instrumented is a kdtree.Index that records metrics for every query.
type Instrumented struct {
	name string
	next kdtree.Index
	tree *kdtree.KDTree
	m    *Metrics
	now  func() time.Time
}

var _ kdtree.Index = (*Instrumented)(nil)

// Len returns the wrapped index's point count.
func (in *Instrumented) Len() int { return in.next.Len() }

// Dims returns the wrapped index's dimensionality.
func (in *Instrumented) Dims() int { return in.next.Dims() }

// NearestNeighbor forwards to the wrapped index and records the query.
func (in *Instrumented) NearestNeighbor(query []float64) (kdtree.Neighbor, bool, error) {
	start := in.now()
	var (
		nb    kdtree.Neighbor
		ok    bool
		trace *kdtree.SearchTrace
		err   error
	)
	if in.tree != nil {
		nb, ok, trace, err = in.tree.NearestNeighborTrace(query)
	} else {
		nb, ok, err = in.next.NearestNeighbor(query)
	}
	in.observe(OpNearest, start, trace, err)
	return nb, ok, err
}

// KNearestNeighbors forwards to the wrapped index and records the query.
func (in *Instrumented) KNearestNeighbors(query []float64, k int) ([]kdtree.Neighbor, error) {
	start := in.now()
	var (
		nbs   []kdtree.Neighbor
		trace *kdtree.SearchTrace
		err   error
	)
	if in.tree != nil {
		nbs, trace, err = in.tree.KNearestNeighborsTrace(query, k)
	} else {
		nbs, err = in.next.KNearestNeighbors(query, k)
	}
	in.observe(OpKNN, start, trace, err)
	return nbs, err
}

// RangeSearch forwards to the wrapped index and records the query.
func (in *Instrumented) RangeSearch(lower, upper []float64) ([]kdtree.Entry, error) {
	start := in.now()
	var (
		hits  []kdtree.Entry
		trace *kdtree.SearchTrace
		err   error
	)
	if in.tree != nil {
		hits, trace, err = in.tree.RangeSearchTrace(lower, upper)
	} else {
		hits, err = in.next.RangeSearch(lower, upper)
	}
	in.observe(OpRange, start, trace, err)
	return hits, err
}

func (in *Instrumented) observe(op string, start time.Time, trace *kdtree.SearchTrace, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	in.m.queries.WithLabelValues(in.name, op, outcome).Inc()
	in.m.duration.WithLabelValues(in.name, op).Observe(in.now().Sub(start).Seconds())
	if trace != nil {
		in.m.visited.WithLabelValues(in.name, op).Observe(float64(trace.Len()))
	}
}
