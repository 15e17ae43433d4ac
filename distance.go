package kdtree

// SquaredDistance returns the squared Euclidean distance between a and b,
// the sum of squared per-dimension differences. Both indexes compare and
// report distances in this space; no square root is ever taken.
func SquaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// planeDistance returns the squared distance from q to the axis-aligned
// hyperplane through p along axis.
func planeDistance(q, p []float64, axis int) float64 {
	d := q[axis] - p[axis]
	return d * d
}

// inBox reports whether lower[i] <= p[i] <= upper[i] on every axis.
func inBox(p, lower, upper []float64) bool {
	for i, v := range p {
		if v < lower[i] || v > upper[i] {
			return false
		}
	}
	return true
}
