package kdtree

// Entry identifies one indexed point: its position in the PointSet and a
// view of its coordinates. Index distinguishes coincident points.
type Entry struct {
	Index int
	Point Point
}

// Neighbor is a query answer with its squared Euclidean distance to the
// query point.
type Neighbor struct {
	Entry
	Distance float64
}

// Index is the query surface shared by KDTree and BruteForceIndex, so a
// harness can issue identical queries against either and compare results.
type Index interface {
	// NearestNeighbor returns the point closest to query. ok is false, with
	// a nil error, only when the index holds no points.
	NearestNeighbor(query []float64) (nb Neighbor, ok bool, err error)

	// KNearestNeighbors returns up to min(k, Len()) points ordered by
	// ascending distance. Points at equal distance are ordered by Index.
	// k must be >= 1.
	KNearestNeighbors(query []float64, k int) ([]Neighbor, error)

	// RangeSearch returns every point p with lower[i] <= p[i] <= upper[i]
	// on all axes. The result order is unspecified.
	RangeSearch(lower, upper []float64) ([]Entry, error)

	// Len returns the number of indexed points.
	Len() int

	// Dims returns the dimensionality of the indexed points.
	Dims() int
}
