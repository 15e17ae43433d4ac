package kdtree

import (
	"slices"
	"testing"
)

func TestKDTree_String(t *testing.T) {
	tree := mustBuild(t, squarePoints())
	want := "Root: [5 5] (axis=0)\n" +
		"  L: [0 10] (axis=1)\n" +
		"    L: [0 0] (axis=0)\n" +
		"  R: [10 10] (axis=1)\n" +
		"    L: [10 0] (axis=0)"
	if got := tree.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	if got := mustBuild(t, nil).String(); got != "Empty KD-Tree" {
		t.Errorf("empty String() = %q", got)
	}
}

func TestKDTree_WalkPreorder(t *testing.T) {
	tree := mustBuild(t, squarePoints())
	var ids []NodeID
	var depths []int
	tree.Walk(func(v NodeView) bool {
		ids = append(ids, v.ID)
		depths = append(depths, v.Depth)
		return true
	})
	if !slices.Equal(ids, []NodeID{0, 1, 2, 3, 4}) {
		t.Errorf("Walk order = %v", ids)
	}
	if !slices.Equal(depths, []int{0, 1, 2, 1, 2}) {
		t.Errorf("Walk depths = %v", depths)
	}

	count := 0
	tree.Walk(func(NodeView) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Walk did not stop early: visited %d", count)
	}
}

func TestKDTree_RootAndChildren(t *testing.T) {
	tree := mustBuild(t, squarePoints())
	id, ok := tree.Root()
	if !ok || id != 0 {
		t.Fatalf("Root() = %d, %v", id, ok)
	}
	root := tree.Node(id)
	if root.IsLeaf() {
		t.Error("root should not be a leaf")
	}
	left := tree.Node(root.Left)
	if left.Point[0] != 0 || left.Point[1] != 10 {
		t.Errorf("left child = %v, want [0 10]", left.Point)
	}
	if left.Right != NoNode {
		t.Errorf("left child right = %d, want NoNode", left.Right)
	}
}

func TestSearchTrace_Points(t *testing.T) {
	tree := mustBuild(t, squarePoints())
	_, _, trace, err := tree.NearestNeighborTrace([]float64{4, 4})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{5, 5}, {0, 10}, {0, 0}, {10, 10}, {10, 0}}
	pts := trace.Points()
	if len(pts) != len(want) {
		t.Fatalf("trace has %d points, want %d", len(pts), len(want))
	}
	for i := range want {
		if !slices.Equal([]float64(pts[i]), want[i]) {
			t.Errorf("trace point %d = %v, want %v", i, pts[i], want[i])
		}
		if v := trace.Node(i); !slices.Equal([]float64(v.Point), want[i]) {
			t.Errorf("trace node %d = %v, want %v", i, v.Point, want[i])
		}
	}
}

func TestSearchTrace_PrunesLargeTree(t *testing.T) {
	n := 4000
	tree := mustBuild(t, randomPoints(77, n, 2, 100))
	for _, q := range randomPoints(78, 20, 2, 90) {
		_, _, trace, err := tree.NearestNeighborTrace(q)
		if err != nil {
			t.Fatal(err)
		}
		if trace.Len() >= n/4 {
			t.Errorf("query %v visited %d of %d nodes", q, trace.Len(), n)
		}
		if trace.Nodes()[0] != 0 {
			t.Errorf("trace does not start at the root: %v", trace.Nodes()[:1])
		}
	}

	_, trace, err := tree.RangeSearchTrace([]float64{-5, -5}, []float64{5, 5})
	if err != nil {
		t.Fatal(err)
	}
	if trace.Len() >= n/4 {
		t.Errorf("small box visited %d of %d nodes", trace.Len(), n)
	}
}

func TestSearchTrace_NoDuplicateVisits(t *testing.T) {
	tree := mustBuild(t, gridPoints(9, 500, 3, 4))
	_, trace, err := tree.KNearestNeighborsTrace([]float64{1, 2, 1}, 25)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[NodeID]bool)
	for _, id := range trace.Nodes() {
		if seen[id] {
			t.Fatalf("node %d visited twice", id)
		}
		seen[id] = true
	}
}
