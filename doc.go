// Package kdtree implements a build-once KD-tree for exact nearest-neighbor,
// k-nearest-neighbor and axis-aligned range queries over a fixed set of
// k-dimensional points, together with a brute-force linear-scan index that
// answers the same queries without preprocessing.
//
// Basic usage:
//
//	tree, err := kdtree.Build(points)
//	nb, ok, err := tree.NearestNeighbor([]float64{4, 4})
//	// ok is false only when the tree holds no points
//	// nb.Distance is the squared Euclidean distance
//
//	knn, err := tree.KNearestNeighbors(query, 3)
//	hits, err := tree.RangeSearch(lower, upper)
//
// Both [*KDTree] and [*BruteForceIndex] implement [Index], so a harness can
// issue identical queries against either and compare answers.
//
// # Construction
//
// Each node splits on the axis with the largest population variance over its
// subset (lowest axis index on ties) and takes the median of the subset
// sorted stably along that axis. The tree is stored as a preorder node arena,
// so subtrees can be built concurrently without changing the result; see
// [Config.Workers].
//
// # Traces
//
// The *Trace query variants additionally return a [SearchTrace]: the nodes
// visited by that query in visitation order, for diagnostic or visualization
// consumers. A built tree is immutable and safe for concurrent queries.
package kdtree
