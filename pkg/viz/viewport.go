package viz

import (
	"math"

	"github.com/kass/go-quadtree/pkg/geo"
)

// Viewport maps the world rectangle onto a Cols x Rows grid of cells.
type Viewport struct {
	World      geo.Rectangle
	Cols, Rows int
}

// Project returns the cell holding world point p, clamped to the grid.
func (v Viewport) Project(p geo.Point) (col, row int) {
	col = scale(p.X, v.World.Left(), v.World.Width(), v.Cols)
	row = scale(p.Y, v.World.Top(), v.World.Height(), v.Rows)
	return col, row
}

// Unproject returns the world coordinates of the center of a cell
func (v Viewport) Unproject(col, row int) geo.Point {
	return geo.Point{
		X: v.World.Left() + (float64(col)+0.5)*v.World.Width()/float64(v.Cols),
		Y: v.World.Top() + (float64(row)+0.5)*v.World.Height()/float64(v.Rows),
	}
}

// CellRect returns the inclusive cell range covered by r
func (v Viewport) CellRect(r geo.Rectangle) (x0, y0, x1, y1 int) {
	x0, y0 = v.Project(geo.Point{X: r.Left(), Y: r.Top()})
	x1, y1 = v.Project(geo.Point{X: r.Right(), Y: r.Bottom()})
	return x0, y0, x1, y1
}

func scale(v, origin, extent float64, cells int) int {
	if cells <= 0 || extent <= 0 {
		return 0
	}
	i := int(math.Floor((v - origin) / extent * float64(cells)))
	if i < 0 {
		return 0
	}
	if i >= cells {
		return cells - 1
	}
	return i
}
