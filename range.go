package kdtree

// Box is an axis-aligned hyper-rectangle with inclusive bounds.
type Box struct {
	Lower []float64
	Upper []float64
}

// rangeState is the per-query accumulator for range search.
type rangeState struct {
	lower, upper []float64
	hits         []Entry
	trace        *SearchTrace
}

// RangeSearch returns every indexed point inside the inclusive box
// [lower, upper], in visitation order. It fails with ErrInvalidRange if
// lower[i] > upper[i] on any axis.
func (t *KDTree) RangeSearch(lower, upper []float64) ([]Entry, error) {
	return t.rangeSearch(lower, upper, nil)
}

// RangeSearchTrace is RangeSearch that also returns the visited nodes.
func (t *KDTree) RangeSearchTrace(lower, upper []float64) ([]Entry, *SearchTrace, error) {
	trace := newTrace(t)
	hits, err := t.rangeSearch(lower, upper, trace)
	if err != nil {
		return nil, nil, err
	}
	return hits, trace, nil
}

func (t *KDTree) rangeSearch(lower, upper []float64, trace *SearchTrace) ([]Entry, error) {
	if err := t.points.checkBox(lower, upper); err != nil {
		return nil, err
	}

	st := &rangeState{lower: lower, upper: upper, hits: []Entry{}, trace: trace}
	t.collect(t.root(), st)
	return st.hits, nil
}

func (t *KDTree) collect(id NodeID, st *rangeState) {
	if id == NoNode {
		return
	}
	st.trace.record(id)

	nd := &t.nodes[id]
	p := t.points.At(nd.point)
	if inBox(p, st.lower, st.upper) {
		st.hits = append(st.hits, Entry{Index: nd.point, Point: p})
	}

	// Left holds coordinates <= p[axis], right holds coordinates >= p[axis].
	axis := int(nd.axis)
	if st.lower[axis] <= p[axis] {
		t.collect(nd.left, st)
	}
	if st.upper[axis] >= p[axis] {
		t.collect(nd.right, st)
	}
}
