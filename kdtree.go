package kdtree

import (
	"cmp"
	"math/bits"
	"slices"

	"github.com/sourcegraph/conc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NodeID addresses a node in a tree's node arena.
type NodeID int32

// NoNode marks an absent child or an empty tree's root.
const NoNode NodeID = -1

// node is one arena entry. Children are addressed by NodeID; every node has
// exactly one parent, so the arena encodes a tree with no shared subtrees.
type node struct {
	point int // index into the PointSet
	axis  int32
	depth int32
	left  NodeID
	right NodeID
}

// KDTree is a balanced KD-tree built once over a PointSet. Nodes live in a
// flat preorder arena: a subtree over m points occupies m consecutive slots,
// the root first, then its left subtree, then its right subtree.
//
// For every node, points reachable via left have coordinate[axis] <=
// point[axis] and points reachable via right have coordinate[axis] >=
// point[axis].
type KDTree struct {
	points *PointSet
	nodes  []node
	height int
}

var _ Index = (*KDTree)(nil)

// Build copies points into a new PointSet and builds a KD-tree over it with
// DefaultConfig. It fails with ErrInvalidInput when dimensions disagree.
func Build(points [][]float64) (*KDTree, error) {
	ps, err := NewPointSet(points)
	if err != nil {
		return nil, err
	}
	return NewKDTree(ps, DefaultConfig())
}

// NewKDTree builds a KD-tree over ps. The PointSet is shared, not copied.
func NewKDTree(ps *PointSet, cfg Config) (*KDTree, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	n := ps.Len()
	t := &KDTree{
		points: ps,
		nodes:  make([]node, n),
	}

	if n > 0 {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		b := &builder{
			points:     ps,
			nodes:      t.nodes,
			threshold:  cfg.ParallelThreshold,
			spawnDepth: spawnDepth(cfg.Workers),
		}
		b.build(perm, 0, 0)
		t.height = treeHeight(t.nodes)
	}

	cfg.Logger.Debug("kdtree built",
		"points", n,
		"dims", ps.Dims(),
		"nodes", len(t.nodes),
		"height", t.height,
		"workers", cfg.Workers,
	)
	return t, nil
}

// builder carries the shared, write-disjoint state of one construction.
// Concurrent builds touch non-overlapping ranges of perm and nodes.
type builder struct {
	points     *PointSet
	nodes      []node
	threshold  int
	spawnDepth int
}

// spawnDepth returns the deepest level at which build still forks. Each
// forking level doubles the number of concurrent builders, so the result is
// floor(log2(workers)) and at most workers builders run at once.
func spawnDepth(workers int) int {
	if workers < 1 {
		return 0
	}
	return bits.Len(uint(workers)) - 1
}

// build lays out the subtree over perm starting at arena slot id.
func (b *builder) build(perm []int, id NodeID, depth int) {
	count := len(perm)
	if count == 0 {
		return
	}

	axis := b.splitAxis(perm)
	ps := b.points
	slices.SortStableFunc(perm, func(i, j int) int {
		return cmp.Compare(ps.coord(i, axis), ps.coord(j, axis))
	})

	median := count / 2
	left, right := NoNode, NoNode
	if median > 0 {
		left = id + 1
	}
	if count-median-1 > 0 {
		right = id + 1 + NodeID(median)
	}
	b.nodes[id] = node{
		point: perm[median],
		axis:  int32(axis),
		depth: int32(depth),
		left:  left,
		right: right,
	}

	if depth < b.spawnDepth && count >= b.threshold {
		var wg conc.WaitGroup
		wg.Go(func() { b.build(perm[:median], left, depth+1) })
		b.build(perm[median+1:], right, depth+1)
		wg.Wait()
		return
	}
	b.build(perm[:median], left, depth+1)
	b.build(perm[median+1:], right, depth+1)
}

// splitAxis returns the axis with the largest population variance over the
// subset, taking the lowest axis index when several share the maximum.
func (b *builder) splitAxis(perm []int) int {
	dims := b.points.Dims()
	if dims == 1 {
		return 0
	}
	col := make([]float64, len(perm))
	variances := make([]float64, dims)
	for d := 0; d < dims; d++ {
		for i, p := range perm {
			col[i] = b.points.coord(p, d)
		}
		variances[d] = stat.PopVariance(col, nil)
	}
	return floats.MaxIdx(variances)
}

func treeHeight(nodes []node) int {
	var h int32
	for i := range nodes {
		if d := nodes[i].depth + 1; d > h {
			h = d
		}
	}
	return int(h)
}

// Len returns the number of points in the tree.
func (t *KDTree) Len() int { return t.points.Len() }

// Dims returns the dimensionality of the indexed points.
func (t *KDTree) Dims() int { return t.points.Dims() }

// Points returns the PointSet the tree was built over.
func (t *KDTree) Points() *PointSet { return t.points }

// NumNodes returns the number of nodes, which equals the number of points.
func (t *KDTree) NumNodes() int { return len(t.nodes) }

// Height returns the number of nodes on the longest root-to-leaf path, or 0
// for an empty tree.
func (t *KDTree) Height() int { return t.height }

func (t *KDTree) nodePoint(id NodeID) Point {
	return t.points.At(t.nodes[id].point)
}

func (t *KDTree) root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}
