package kdtree

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type goldenNode struct {
	PointIndex int `json:"point_index"`
	Axis       int `json:"axis"`
	Depth      int `json:"depth"`
	Left       int `json:"left"`
	Right      int `json:"right"`
}

type goldenNearest struct {
	Query    []float64 `json:"query"`
	Index    int       `json:"index"`
	Distance float64   `json:"distance"`
	Trace    []int     `json:"trace"`
}

type goldenKNN struct {
	Query     []float64 `json:"query"`
	K         int       `json:"k"`
	Indices   []int     `json:"indices"`
	Distances []float64 `json:"distances"`
	Trace     []int     `json:"trace"`
}

type goldenRange struct {
	Lower   []float64 `json:"lower"`
	Upper   []float64 `json:"upper"`
	Indices []int     `json:"indices"`
	Trace   []int     `json:"trace"`
}

type goldenData struct {
	Dataset string          `json:"dataset"`
	Points  [][]float64     `json:"points"`
	Tree    []goldenNode    `json:"tree"`
	Nearest []goldenNearest `json:"nearest"`
	KNN     []goldenKNN     `json:"knn"`
	Range   []goldenRange   `json:"range"`
}

func loadGoldenFile(t *testing.T, path string) goldenData {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}
	var gd goldenData
	if err := json.Unmarshal(data, &gd); err != nil {
		t.Fatalf("failed to parse golden file %s: %v", path, err)
	}
	return gd
}

func traceInts(s *SearchTrace) []int {
	out := make([]int, s.Len())
	for i, id := range s.Nodes() {
		out[i] = int(id)
	}
	return out
}

func entryIndices(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

// TestGolden checks tree shape, answers and traces against hand-derived
// reference output. Shape and traces depend on the exact axis tie-break and
// stable median selection, so any change there shows up here first.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.json")
	if err != nil {
		t.Fatalf("failed to glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no golden test files found in testdata/")
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			gd := loadGoldenFile(t, f)
			tree, err := Build(gd.Points)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}

			if tree.NumNodes() != len(gd.Tree) {
				t.Fatalf("NumNodes() = %d, golden %d", tree.NumNodes(), len(gd.Tree))
			}
			for i, want := range gd.Tree {
				v := tree.Node(NodeID(i))
				got := goldenNode{
					PointIndex: v.PointIndex,
					Axis:       v.Axis,
					Depth:      v.Depth,
					Left:       int(v.Left),
					Right:      int(v.Right),
				}
				if got != want {
					t.Errorf("node %d: got %+v, golden %+v", i, got, want)
				}
			}

			for _, q := range gd.Nearest {
				nb, ok, trace, err := tree.NearestNeighborTrace(q.Query)
				if err != nil || !ok {
					t.Fatalf("NearestNeighborTrace(%v): ok=%v err=%v", q.Query, ok, err)
				}
				if nb.Index != q.Index || nb.Distance != q.Distance {
					t.Errorf("nearest %v: got index=%d dist=%v, golden index=%d dist=%v",
						q.Query, nb.Index, nb.Distance, q.Index, q.Distance)
				}
				if got := traceInts(trace); !slices.Equal(got, q.Trace) {
					t.Errorf("nearest %v trace: got %v, golden %v", q.Query, got, q.Trace)
				}
			}

			for _, q := range gd.KNN {
				nbs, trace, err := tree.KNearestNeighborsTrace(q.Query, q.K)
				if err != nil {
					t.Fatalf("KNearestNeighborsTrace(%v, %d) error: %v", q.Query, q.K, err)
				}
				gotIdx := make([]int, len(nbs))
				gotDist := make([]float64, len(nbs))
				for i, nb := range nbs {
					gotIdx[i] = nb.Index
					gotDist[i] = nb.Distance
				}
				if !slices.Equal(gotIdx, q.Indices) || !slices.Equal(gotDist, q.Distances) {
					t.Errorf("knn %v k=%d: got idx=%v dist=%v, golden idx=%v dist=%v",
						q.Query, q.K, gotIdx, gotDist, q.Indices, q.Distances)
				}
				if got := traceInts(trace); !slices.Equal(got, q.Trace) {
					t.Errorf("knn %v trace: got %v, golden %v", q.Query, got, q.Trace)
				}
			}

			for _, q := range gd.Range {
				hits, trace, err := tree.RangeSearchTrace(q.Lower, q.Upper)
				if err != nil {
					t.Fatalf("RangeSearchTrace(%v, %v) error: %v", q.Lower, q.Upper, err)
				}
				if got := entryIndices(hits); !slices.Equal(got, q.Indices) {
					t.Errorf("range %v-%v: got %v, golden %v", q.Lower, q.Upper, got, q.Indices)
				}
				if got := traceInts(trace); !slices.Equal(got, q.Trace) {
					t.Errorf("range %v-%v trace: got %v, golden %v", q.Lower, q.Upper, got, q.Trace)
				}
			}
		})
	}
}
