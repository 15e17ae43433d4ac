package kdtree

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"
)

// knnState is the per-query accumulator for k-nearest-neighbor search.
type knnState struct {
	query []float64
	k     int
	heap  knnHeap
	trace *SearchTrace
}

// farthest returns the distance of the worst retained candidate.
func (st *knnState) farthest() float64 { return st.heap[0].dist }

// KNearestNeighbors returns the min(k, Len()) indexed points closest to
// query, ordered by ascending distance. It fails with ErrInvalidArgument if
// k <= 0.
func (t *KDTree) KNearestNeighbors(query []float64, k int) ([]Neighbor, error) {
	return t.kNearestNeighbors(query, k, nil)
}

// KNearestNeighborsTrace is KNearestNeighbors that also returns the visited
// nodes.
func (t *KDTree) KNearestNeighborsTrace(query []float64, k int) ([]Neighbor, *SearchTrace, error) {
	trace := newTrace(t)
	nbs, err := t.kNearestNeighbors(query, k, trace)
	if err != nil {
		return nil, nil, err
	}
	return nbs, trace, nil
}

func (t *KDTree) kNearestNeighbors(query []float64, k int, trace *SearchTrace) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("kdtree: k must be >= 1, got %d: %w", k, ErrInvalidArgument)
	}
	if err := t.points.checkQuery("query", query); err != nil {
		return nil, err
	}

	capacity := min(k, t.Len())
	st := &knnState{query: query, k: k, heap: make(knnHeap, 0, capacity), trace: trace}
	t.knn(t.root(), st)

	return st.heap.sorted(t.points), nil
}

func (t *KDTree) knn(id NodeID, st *knnState) {
	if id == NoNode {
		return
	}
	st.trace.record(id)

	nd := &t.nodes[id]
	p := t.points.At(nd.point)

	d := SquaredDistance(st.query, p)
	switch {
	case len(st.heap) < st.k:
		heap.Push(&st.heap, knnItem{index: nd.point, dist: d})
	case d < st.farthest():
		// Evict the farthest candidate in place.
		st.heap[0] = knnItem{index: nd.point, dist: d}
		heap.Fix(&st.heap, 0)
	}

	axis := int(nd.axis)
	near, far := nd.right, nd.left
	if st.query[axis] < p[axis] {
		near, far = nd.left, nd.right
	}

	t.knn(near, st)

	if len(st.heap) < st.k || planeDistance(st.query, p, axis) < st.farthest() {
		t.knn(far, st)
	}
}

// --- bounded max-heap for KNN queries ---

type knnItem struct {
	index int
	dist  float64
}

// knnHeap is a max-heap of knnItem (largest distance on top) used as a
// bounded candidate set: the head is always the farthest retained point.
type knnHeap []knnItem

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return h[i].dist > h[j].dist } // max-heap
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// sorted returns the retained candidates ordered by ascending distance, ties
// broken by point index.
func (h knnHeap) sorted(ps *PointSet) []Neighbor {
	items := slices.Clone(h)
	slices.SortFunc(items, func(a, b knnItem) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]Neighbor, len(items))
	for i, it := range items {
		out[i] = Neighbor{
			Entry:    Entry{Index: it.index, Point: ps.At(it.index)},
			Distance: it.dist,
		}
	}
	return out
}
