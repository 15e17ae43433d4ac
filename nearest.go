package kdtree

import "math"

// nearestState is the per-query accumulator for nearest-neighbor search.
type nearestState struct {
	query []float64
	best  NodeID
	dist  float64
	trace *SearchTrace
}

// NearestNeighbor returns the indexed point closest to query. ok is false
// when the tree is empty.
func (t *KDTree) NearestNeighbor(query []float64) (Neighbor, bool, error) {
	return t.nearestNeighbor(query, nil)
}

// NearestNeighborTrace is NearestNeighbor that also returns the visited
// nodes.
func (t *KDTree) NearestNeighborTrace(query []float64) (Neighbor, bool, *SearchTrace, error) {
	trace := newTrace(t)
	nb, ok, err := t.nearestNeighbor(query, trace)
	if err != nil {
		return Neighbor{}, false, nil, err
	}
	return nb, ok, trace, nil
}

func (t *KDTree) nearestNeighbor(query []float64, trace *SearchTrace) (Neighbor, bool, error) {
	if err := t.points.checkQuery("query", query); err != nil {
		return Neighbor{}, false, err
	}

	st := &nearestState{query: query, best: NoNode, dist: math.Inf(1), trace: trace}
	t.nearest(t.root(), st)
	if st.best == NoNode {
		return Neighbor{}, false, nil
	}

	idx := t.nodes[st.best].point
	return Neighbor{
		Entry:    Entry{Index: idx, Point: t.points.At(idx)},
		Distance: st.dist,
	}, true, nil
}

func (t *KDTree) nearest(id NodeID, st *nearestState) {
	if id == NoNode {
		return
	}
	st.trace.record(id)

	nd := &t.nodes[id]
	p := t.points.At(nd.point)

	// Strict: the first point reaching a distance keeps it. The first visited
	// point is always taken, even when its distance overflows to +Inf.
	if d := SquaredDistance(st.query, p); st.best == NoNode || d < st.dist {
		st.best = id
		st.dist = d
	}

	axis := int(nd.axis)
	near, far := nd.right, nd.left
	if st.query[axis] < p[axis] {
		near, far = nd.left, nd.right
	}

	t.nearest(near, st)

	// Every point across the splitting plane is at least planeDistance away.
	if planeDistance(st.query, p, axis) < st.dist {
		t.nearest(far, st)
	}
}
