package kdtree

import (
	"fmt"
	"math"
)

// Point is a read-only view of one k-dimensional point. Points handed out by
// a PointSet alias its storage and must not be modified.
type Point []float64

// PointSet is an immutable collection of points sharing one dimensionality.
// Points are stored in a flat row-major array (n * dims).
type PointSet struct {
	data []float64
	n    int
	dims int
}

// NewPointSet copies rows into a new PointSet. Every row must have the same
// non-zero length and only finite coordinates. An empty input yields an empty
// set with dimension 0.
func NewPointSet(points [][]float64) (*PointSet, error) {
	n := len(points)
	if n == 0 {
		return &PointSet{}, nil
	}

	dims := len(points[0])
	if dims == 0 {
		return nil, fmt.Errorf("kdtree: points must have at least one coordinate: %w", ErrInvalidInput)
	}

	data := make([]float64, n*dims)
	for i, row := range points {
		if len(row) != dims {
			return nil, fmt.Errorf("kdtree: point %d has %d coordinates, want %d: %w", i, len(row), dims, ErrInvalidInput)
		}
		copy(data[i*dims:], row)
	}

	if err := checkFinite(data, dims); err != nil {
		return nil, err
	}
	return &PointSet{data: data, n: n, dims: dims}, nil
}

// NewPointSetFlat copies flat row-major data with n points of dimensionality
// dims into a new PointSet.
func NewPointSetFlat(data []float64, n, dims int) (*PointSet, error) {
	if n < 0 || dims < 0 {
		return nil, fmt.Errorf("kdtree: negative shape n=%d dims=%d: %w", n, dims, ErrInvalidInput)
	}
	if n > 0 && dims == 0 {
		return nil, fmt.Errorf("kdtree: points must have at least one coordinate: %w", ErrInvalidInput)
	}
	if len(data) != n*dims {
		return nil, fmt.Errorf("kdtree: data length %d does not match n*dims = %d (n=%d, dims=%d): %w",
			len(data), n*dims, n, dims, ErrInvalidInput)
	}

	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)
	if err := checkFinite(dataCopy, dims); err != nil {
		return nil, err
	}
	return &PointSet{data: dataCopy, n: n, dims: dims}, nil
}

func checkFinite(data []float64, dims int) error {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("kdtree: point %d coordinate %d is %v: %w", i/dims, i%dims, v, ErrInvalidInput)
		}
	}
	return nil
}

// Len returns the number of points.
func (ps *PointSet) Len() int { return ps.n }

// Dims returns the dimensionality of every point, or 0 for a set built from
// no rows.
func (ps *PointSet) Dims() int { return ps.dims }

// At returns point i.
func (ps *PointSet) At(i int) Point {
	lo, hi := i*ps.dims, (i+1)*ps.dims
	return Point(ps.data[lo:hi:hi])
}

// Points returns views of all points in input order.
func (ps *PointSet) Points() []Point {
	out := make([]Point, ps.n)
	for i := range out {
		out[i] = ps.At(i)
	}
	return out
}

func (ps *PointSet) coord(i, axis int) float64 {
	return ps.data[i*ps.dims+axis]
}

// checkQuery validates a query vector against the set's dimensionality. An
// empty set built without a known dimension accepts any query length.
func (ps *PointSet) checkQuery(name string, q []float64) error {
	if ps.dims == 0 && ps.n == 0 {
		return nil
	}
	if len(q) != ps.dims {
		return fmt.Errorf("kdtree: %s has %d coordinates, want %d: %w", name, len(q), ps.dims, ErrInvalidInput)
	}
	for i, v := range q {
		if math.IsNaN(v) {
			return fmt.Errorf("kdtree: %s coordinate %d is NaN: %w", name, i, ErrInvalidInput)
		}
	}
	return nil
}

// checkBox validates range bounds: matching dimensions and lower <= upper on
// every axis.
func (ps *PointSet) checkBox(lower, upper []float64) error {
	if err := ps.checkQuery("lower bound", lower); err != nil {
		return err
	}
	if err := ps.checkQuery("upper bound", upper); err != nil {
		return err
	}
	if len(lower) != len(upper) {
		return fmt.Errorf("kdtree: lower bound has %d coordinates, upper bound %d: %w", len(lower), len(upper), ErrInvalidInput)
	}
	for i := range lower {
		if lower[i] > upper[i] {
			return fmt.Errorf("kdtree: lower[%d]=%v exceeds upper[%d]=%v: %w", i, lower[i], i, upper[i], ErrInvalidRange)
		}
	}
	return nil
}
