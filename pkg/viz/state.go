package viz

import (
	"math"

	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
)

// State is everything a frame depends on. Corners holds x1, y1, x2, y2 in
// world coordinates; unset corners are NaN.
type State struct {
	Tree    *quadtree.Node
	Corners [4]float64
	Matches []geo.Point
}

// NewState returns a state for tree with no query selected
func NewState(tree *quadtree.Node) State {
	s := State{Tree: tree}
	s.ClearQuery()
	return s
}

// ClearQuery unsets both corners and drops the matches
func (s *State) ClearQuery() {
	nan := math.NaN()
	s.Corners = [4]float64{nan, nan, nan, nan}
	s.Matches = nil
}

// SetFirstCorner starts a new selection at p; the second corner is unset
// until the pointer moves.
func (s *State) SetFirstCorner(p geo.Point) {
	s.ClearQuery()
	s.Corners[0], s.Corners[1] = p.X, p.Y
}

func (s *State) SetSecondCorner(p geo.Point) {
	s.Corners[2], s.Corners[3] = p.X, p.Y
	s.Refresh()
}

// Query returns the selection rectangle, or false while a corner is unset.
func (s State) Query() (geo.Rectangle, bool) {
	return geo.RectangleFromCorners(s.Corners[0], s.Corners[1], s.Corners[2], s.Corners[3])
}

// Refresh recomputes the matches for the current selection
func (s *State) Refresh() {
	query, ok := s.Query()
	if !ok || s.Tree == nil {
		s.Matches = nil
		return
	}
	s.Matches = s.Tree.QueryRange(query)
}
