package geo

import "fmt"

// Boundary is a 2D region supporting point containment and region
// intersection tests. The quadtree depends only on this interface; Quarter
// lets a node build children of the same concrete kind as its own boundary.
type Boundary interface {
	// ContainsPoint reports whether p lies inside the region or on its border.
	ContainsPoint(p Point) bool
	// Intersects reports whether the region overlaps or touches other.
	Intersects(other Boundary) bool
	// Bounds returns the axis-aligned envelope of the region.
	Bounds() Rectangle
	// Quarter returns the child region for quadrant q.
	Quarter(q Quadrant) Boundary
}

// Quadrant identifies one of the four children of a subdivided region.
// The y axis grows downward, so north is the smaller y.
type Quadrant int

const (
	NorthWest Quadrant = iota
	NorthEast
	SouthWest
	SouthEast
)

// Quadrants lists the quadrants in the fixed child order.
var Quadrants = [4]Quadrant{NorthWest, NorthEast, SouthWest, SouthEast}

// Signs returns the sign of the child's center offset on each axis.
func (q Quadrant) Signs() (sx, sy float64) {
	switch q {
	case NorthWest:
		return -1, -1
	case NorthEast:
		return 1, -1
	case SouthWest:
		return -1, 1
	case SouthEast:
		return 1, 1
	}
	panic(fmt.Sprintf("geo: invalid quadrant %d", int(q)))
}

func (q Quadrant) String() string {
	switch q {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	}
	return fmt.Sprintf("Quadrant(%d)", int(q))
}
