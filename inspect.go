package kdtree

import (
	"fmt"
	"strings"
)

// NodeView is a read-only snapshot of one tree node.
type NodeView struct {
	ID         NodeID
	Point      Point
	PointIndex int // position of Point in the tree's PointSet
	Axis       int // split axis for this node's descendants
	Depth      int // 0 at the root
	Left       NodeID
	Right      NodeID
}

// IsLeaf reports whether the node has no children.
func (v NodeView) IsLeaf() bool { return v.Left == NoNode && v.Right == NoNode }

// Root returns the root node ID; ok is false for an empty tree.
func (t *KDTree) Root() (id NodeID, ok bool) {
	id = t.root()
	return id, id != NoNode
}

// Node returns a view of node id. It panics if id is out of range.
func (t *KDTree) Node(id NodeID) NodeView {
	nd := t.nodes[id]
	return NodeView{
		ID:         id,
		Point:      t.points.At(nd.point),
		PointIndex: nd.point,
		Axis:       int(nd.axis),
		Depth:      int(nd.depth),
		Left:       nd.left,
		Right:      nd.right,
	}
}

// Walk calls fn for every node in preorder (node, left subtree, right
// subtree). It stops early when fn returns false.
func (t *KDTree) Walk(fn func(NodeView) bool) {
	// Arena order is preorder.
	for i := range t.nodes {
		if !fn(t.Node(NodeID(i))) {
			return
		}
	}
}

// String renders the tree as an indented preorder listing, one node per
// line with its point and split axis.
func (t *KDTree) String() string {
	if len(t.nodes) == 0 {
		return "Empty KD-Tree"
	}
	var sb strings.Builder
	t.writeNode(&sb, 0, "Root: ")
	return strings.TrimSuffix(sb.String(), "\n")
}

func (t *KDTree) writeNode(sb *strings.Builder, id NodeID, prefix string) {
	if id == NoNode {
		return
	}
	nd := t.nodes[id]
	fmt.Fprintf(sb, "%s%s%v (axis=%d)\n", strings.Repeat("  ", int(nd.depth)), prefix, t.points.At(nd.point), nd.axis)
	t.writeNode(sb, nd.left, "L: ")
	t.writeNode(sb, nd.right, "R: ")
}
