package kdtree

import (
	"fmt"
	"math"
	"sort"
)

// BruteForceIndex answers the same queries as KDTree by scanning every
// point. It needs no preprocessing and serves as the correctness oracle and
// performance baseline for the tree.
type BruteForceIndex struct {
	points *PointSet
}

var _ Index = (*BruteForceIndex)(nil)

// NewBruteForce returns a linear-scan index over ps.
func NewBruteForce(ps *PointSet) *BruteForceIndex {
	return &BruteForceIndex{points: ps}
}

// Len returns the number of indexed points.
func (b *BruteForceIndex) Len() int { return b.points.Len() }

// Dims returns the dimensionality of the indexed points.
func (b *BruteForceIndex) Dims() int { return b.points.Dims() }

// NearestNeighbor returns the closest point, keeping the first point in
// input order among equals. ok is false when the index is empty.
func (b *BruteForceIndex) NearestNeighbor(query []float64) (Neighbor, bool, error) {
	if err := b.points.checkQuery("query", query); err != nil {
		return Neighbor{}, false, err
	}

	best := -1
	minDist := math.Inf(1)
	for i := 0; i < b.points.Len(); i++ {
		if d := SquaredDistance(query, b.points.At(i)); best < 0 || d < minDist {
			minDist = d
			best = i
		}
	}
	if best < 0 {
		return Neighbor{}, false, nil
	}
	return Neighbor{
		Entry:    Entry{Index: best, Point: b.points.At(best)},
		Distance: minDist,
	}, true, nil
}

// KNearestNeighbors keeps an ascending list of at most k candidates,
// inserting each point at its sorted position and dropping the farthest once
// the list is full.
func (b *BruteForceIndex) KNearestNeighbors(query []float64, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("kdtree: k must be >= 1, got %d: %w", k, ErrInvalidArgument)
	}
	if err := b.points.checkQuery("query", query); err != nil {
		return nil, err
	}

	nearest := make([]Neighbor, 0, min(k, b.points.Len()))
	for i := 0; i < b.points.Len(); i++ {
		p := b.points.At(i)
		d := SquaredDistance(query, p)
		if len(nearest) == k && d >= nearest[k-1].Distance {
			continue
		}

		// Insert after existing equals so earlier points stay ahead.
		pos := sort.Search(len(nearest), func(j int) bool { return nearest[j].Distance > d })
		if len(nearest) < k {
			nearest = append(nearest, Neighbor{})
		}
		copy(nearest[pos+1:], nearest[pos:])
		nearest[pos] = Neighbor{Entry: Entry{Index: i, Point: p}, Distance: d}
	}
	return nearest, nil
}

// RangeSearch returns the points inside the inclusive box [lower, upper] in
// input order.
func (b *BruteForceIndex) RangeSearch(lower, upper []float64) ([]Entry, error) {
	if err := b.points.checkBox(lower, upper); err != nil {
		return nil, err
	}

	hits := []Entry{}
	for i := 0; i < b.points.Len(); i++ {
		if p := b.points.At(i); inBox(p, lower, upper) {
			hits = append(hits, Entry{Index: i, Point: p})
		}
	}
	return hits, nil
}
