package kdtree

// SearchTrace records the nodes one query visited, in visitation order.
// It is created fresh by each traced query and owned by its caller.
type SearchTrace struct {
	tree    *KDTree
	visited []NodeID
}

func newTrace(t *KDTree) *SearchTrace {
	return &SearchTrace{tree: t, visited: make([]NodeID, 0, t.height)}
}

func (s *SearchTrace) record(id NodeID) {
	if s != nil {
		s.visited = append(s.visited, id)
	}
}

// Len returns the number of visited nodes.
func (s *SearchTrace) Len() int { return len(s.visited) }

// Nodes returns the visited node IDs in visitation order.
func (s *SearchTrace) Nodes() []NodeID { return s.visited }

// Node returns the i-th visited node.
func (s *SearchTrace) Node(i int) NodeView { return s.tree.Node(s.visited[i]) }

// Points returns the points of the visited nodes in visitation order.
func (s *SearchTrace) Points() []Point {
	out := make([]Point, len(s.visited))
	for i, id := range s.visited {
		out[i] = s.tree.nodePoint(id)
	}
	return out
}
