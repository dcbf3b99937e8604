package quadtree

import "github.com/kass/go-quadtree/pkg/geo"

// Boundary returns the region covered by the node
func (n *Node) Boundary() geo.Boundary {
	return n.boundary
}

// Capacity returns the leaf capacity shared by the whole tree
func (n *Node) Capacity() int {
	return n.capacity
}

// Depth returns the distance from the root (the root has depth 0)
func (n *Node) Depth() int {
	return n.depth
}

// MaxDepth returns the depth guard shared by the whole tree
func (n *Node) MaxDepth() int {
	return n.maxDepth
}

// IsLeaf reports whether the node still stores points itself
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Children returns the four children in NW, NE, SW, SE order, or nil for a
// leaf. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Points returns the points buffered in this node, which is empty once the
// node is internal. The slice must not be modified.
func (n *Node) Points() []geo.Point {
	return n.points
}

// Walk visits the subtree in pre-order. When fn returns false the children of
// that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Len returns the number of points stored in the subtree
func (n *Node) Len() int {
	count := 0
	n.Walk(func(node *Node) bool {
		count += len(node.points)
		return true
	})
	return count
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes  int
	Leaves int
	Points int
	// Height is the depth of the deepest node, relative to the walked node.
	Height int
	// Overflowing counts leaves holding more points than the capacity,
	// which only happens at the depth guard.
	Overflowing int
}

// Stats walks the subtree and collects its Stats.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(node *Node) bool {
		s.Nodes++
		s.Points += len(node.points)
		if h := node.depth - n.depth; h > s.Height {
			s.Height = h
		}
		if node.IsLeaf() {
			s.Leaves++
			if len(node.points) > max(node.capacity, 0) {
				s.Overflowing++
			}
		}
		return true
	})
	return s
}
