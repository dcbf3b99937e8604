package viz

import (
	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
)

const (
	pointChar    = '·'
	selectedChar = '●'
)

// DrawTree draws every node boundary and every buffered point of the tree.
func DrawTree(c *Canvas, vp Viewport, root *quadtree.Node) {
	root.Walk(func(n *quadtree.Node) bool {
		DrawBoundary(c, vp, n.Boundary().Bounds(), StyleGrid)
		return true
	})
	root.Walk(func(n *quadtree.Node) bool {
		DrawPoints(c, vp, n.Points(), pointChar, StylePoint)
		return true
	})
}

// DrawBoundary outlines r
func DrawBoundary(c *Canvas, vp Viewport, r geo.Rectangle, style StyleKey) {
	x0, y0, x1, y1 := vp.CellRect(r)
	c.HLine(x0, x1, y0, style)
	c.HLine(x0, x1, y1, style)
	c.VLine(x0, y0, y1, style)
	c.VLine(x1, y0, y1, style)
}

// FillBoundary restyles every cell covered by r, keeping the characters
func FillBoundary(c *Canvas, vp Viewport, r geo.Rectangle, style StyleKey) {
	x0, y0, x1, y1 := vp.CellRect(r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.SetStyle(x, y, style)
		}
	}
}

func DrawPoints(c *Canvas, vp Viewport, points []geo.Point, ch rune, style StyleKey) {
	for _, p := range points {
		col, row := vp.Project(p)
		c.Set(col, row, ch, style)
	}
}

// Render draws one frame of s: the tree, then the query rectangle and its
// matches when the query is valid.
func Render(s State, vp Viewport) *Canvas {
	c := NewCanvas(vp.Cols, vp.Rows)
	if s.Tree == nil {
		return c
	}
	DrawTree(c, vp, s.Tree)

	if query, ok := s.Query(); ok {
		FillBoundary(c, vp, query, StyleQuery)
		DrawPoints(c, vp, s.Matches, selectedChar, StyleMatch)
	}
	return c
}
