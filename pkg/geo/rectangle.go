package geo

import (
	"math"
	"strconv"
)

// Rectangle is an axis-aligned rectangle given by its center and extent.
// Borders are derived on demand so they can never drift from the center.
type Rectangle struct {
	cx, cy        float64
	width, height float64
}

var _ Boundary = Rectangle{}

// NewRectangle creates a rectangle centered at (cx, cy). Width and height
// are not validated.
func NewRectangle(cx, cy, width, height float64) Rectangle {
	return Rectangle{cx: cx, cy: cy, width: width, height: height}
}

// RectangleFromCorners normalizes two arbitrary corners into a rectangle:
// the midpoint becomes the center and the absolute deltas the extent.
// It reports false if any coordinate is NaN or infinite.
func RectangleFromCorners(x1, y1, x2, y2 float64) (Rectangle, bool) {
	for _, v := range [...]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Rectangle{}, false
		}
	}
	return NewRectangle((x1+x2)/2, (y1+y2)/2, math.Abs(x2-x1), math.Abs(y2-y1)), true
}

func (r Rectangle) CenterX() float64 { return r.cx }
func (r Rectangle) CenterY() float64 { return r.cy }
func (r Rectangle) Width() float64   { return r.width }
func (r Rectangle) Height() float64  { return r.height }

func (r Rectangle) Top() float64    { return r.cy - r.height/2 }
func (r Rectangle) Bottom() float64 { return r.cy + r.height/2 }
func (r Rectangle) Left() float64   { return r.cx - r.width/2 }
func (r Rectangle) Right() float64  { return r.cx + r.width/2 }

// Center returns the center as a point
func (r Rectangle) Center() Point {
	return Point{X: r.cx, Y: r.cy}
}

// Corners returns top-left, top-right, bottom-left and bottom-right.
func (r Rectangle) Corners() [4]Point {
	return [4]Point{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Left(), Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
}

// ContainsPoint uses closed intervals: points on the border are inside.
func (r Rectangle) ContainsPoint(p Point) bool {
	withinX := r.Left() <= p.X && p.X <= r.Right()
	withinY := r.Top() <= p.Y && p.Y <= r.Bottom()
	return withinX && withinY
}

// Intersects reports overlap against the envelope of other. Touching edges
// intersect, consistent with ContainsPoint.
func (r Rectangle) Intersects(other Boundary) bool {
	o := other.Bounds()
	return !(r.Top() > o.Bottom() ||
		r.Bottom() < o.Top() ||
		r.Left() > o.Right() ||
		r.Right() < o.Left())
}

func (r Rectangle) Bounds() Rectangle {
	return r
}

// Quarter returns the child rectangle for q: half the width and height,
// centered a quarter extent away from r's center on each axis.
func (r Rectangle) Quarter(q Quadrant) Boundary {
	sx, sy := q.Signs()
	return NewRectangle(r.cx+sx*r.width/4, r.cy+sy*r.height/4, r.width/2, r.height/2)
}

func (r Rectangle) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return "[" + f(r.Left()) + "," + f(r.Top()) + "," + f(r.Right()) + "," + f(r.Bottom()) + "]"
}
