// Package quadtree implements a point quadtree over an arbitrary geo.Boundary.
//
// A node is either a leaf buffering up to Capacity points or an internal node
// that has delegated its points to exactly four children quartering its
// boundary. A Node is not safe for concurrent mutation; a fully built tree may
// be queried from several goroutines at once.
package quadtree

import (
	"github.com/kass/go-quadtree/pkg/geo"
)

const (
	// DefaultCapacity replaces a zero capacity. Negative capacities are kept;
	// such leaves split on every insert down to the depth guard.
	DefaultCapacity = 10
	// DefaultMaxDepth replaces a non-positive depth guard.
	DefaultMaxDepth = 32
)

// Node is a quadtree node. The root is created with New; children are
// created by subdivision only.
type Node struct {
	boundary geo.Boundary
	capacity int
	depth    int
	maxDepth int

	points   []geo.Point
	children []*Node
}

// New creates an empty root node over boundary.
func New(boundary geo.Boundary, capacity int) *Node {
	return NewWithMaxDepth(boundary, capacity, DefaultMaxDepth)
}

// NewWithMaxDepth creates an empty root node whose subtree never grows deeper
// than maxDepth. Leaves at that depth keep accepting points past capacity, so
// coincident points cannot recurse without bound.
func NewWithMaxDepth(boundary geo.Boundary, capacity, maxDepth int) *Node {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return newNode(boundary, capacity, 0, maxDepth)
}

func newNode(boundary geo.Boundary, capacity, depth, maxDepth int) *Node {
	return &Node{
		boundary: boundary,
		capacity: capacity,
		depth:    depth,
		maxDepth: maxDepth,
	}
}

// Insert adds p to the subtree. It returns false, without mutating anything,
// when p lies outside the node's boundary.
func (n *Node) Insert(p geo.Point) bool {
	if !n.boundary.ContainsPoint(p) {
		return false
	}

	if n.IsLeaf() {
		if len(n.points) < n.capacity || n.depth >= n.maxDepth {
			n.points = append(n.points, p)
			return true
		}
		n.subdivide()
	}

	for _, child := range n.children {
		if child.Insert(p) {
			return true
		}
	}
	// only reachable when a custom Boundary.Quarter leaves gaps between children
	return false
}

// InsertPoints inserts every point in order. Points outside the boundary are
// dropped silently; the result is always true.
func (n *Node) InsertPoints(points []geo.Point) bool {
	for _, p := range points {
		n.Insert(p)
	}
	return true
}

// subdivide turns a leaf into an internal node: it creates the four children
// and moves the buffered points into them.
func (n *Node) subdivide() {
	n.children = make([]*Node, len(geo.Quadrants))
	for i, q := range geo.Quadrants {
		n.children[i] = newNode(n.boundary.Quarter(q), n.capacity, n.depth+1, n.maxDepth)
	}

	buffered := n.points
	n.points = nil
	n.InsertPoints(buffered)
}

// QueryRange returns every point contained in b.
func (n *Node) QueryRange(b geo.Boundary) []geo.Point {
	return n.QueryRangeInto(b, nil)
}

// QueryRangeInto appends every point contained in b to found and returns the
// extended slice. Results come in depth-first order over NW, NE, SW, SE.
func (n *Node) QueryRangeInto(b geo.Boundary, found []geo.Point) []geo.Point {
	if !b.Intersects(n.boundary) {
		return found
	}

	for _, child := range n.children {
		found = child.QueryRangeInto(b, found)
	}

	for _, p := range n.points {
		if b.ContainsPoint(p) {
			found = append(found, p)
		}
	}
	return found
}
