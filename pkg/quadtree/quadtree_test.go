package quadtree

import (
	"math/rand"
	"testing"

	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canvas() geo.Rectangle {
	return geo.NewRectangle(250, 250, 500, 500)
}

// countingBoundary records how many nodes a query visits.
type countingBoundary struct {
	geo.Rectangle
	calls *int
}

func (c countingBoundary) Intersects(other geo.Boundary) bool {
	*c.calls++
	return c.Rectangle.Intersects(other)
}

func TestNew(t *testing.T) {
	tree := New(canvas(), 4)
	require.NotNil(t, tree)
	assert.True(t, tree.IsLeaf())
	assert.Empty(t, tree.Points())
	assert.Nil(t, tree.Children())
	assert.Equal(t, 4, tree.Capacity())
	assert.Equal(t, 0, tree.Depth())
	assert.Equal(t, DefaultMaxDepth, tree.MaxDepth())
	assert.Equal(t, canvas(), tree.Boundary())
}

func TestNew_DefaultCapacity(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		expected int
	}{
		{"Zero", 0, DefaultCapacity},
		{"Negative", -3, -3},
		{"One", 1, 1},
		{"Given", 25, 25},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, New(canvas(), testCase.capacity).Capacity())
		})
	}
}

func TestInsert_NegativeCapacitySplitsImmediately(t *testing.T) {
	tree := NewWithMaxDepth(canvas(), -3, 3)
	require.True(t, tree.Insert(geo.Point{X: 10, Y: 10}))

	assert.False(t, tree.IsLeaf())
	stats := tree.Stats()
	assert.Equal(t, 1, stats.Points)
	assert.Equal(t, 3, stats.Height)
	assert.Equal(t, 13, stats.Nodes)
	assert.Equal(t, 1, stats.Overflowing)
}

func TestInsert_OutsideBoundary(t *testing.T) {
	tree := New(canvas(), 2)
	require.True(t, tree.Insert(geo.Point{X: 10, Y: 10}))

	outside := []geo.Point{{X: -1, Y: 10}, {X: 10, Y: 500.5}, {X: 1e9, Y: -1e9}}
	for _, p := range outside {
		assert.False(t, tree.Insert(p), "point %v", p)
	}
	assert.Equal(t, 1, tree.Len())
	assert.True(t, tree.IsLeaf())
}

func TestInsert_OnRootBorder(t *testing.T) {
	tree := New(canvas(), 1)
	corners := canvas().Corners()
	for _, c := range corners {
		assert.True(t, tree.Insert(c), "corner %v", c)
	}
	assert.Equal(t, len(corners), tree.Len())
	assert.ElementsMatch(t, corners[:], tree.QueryRange(canvas()))
}

func TestSubdivide_OnOverflow(t *testing.T) {
	const capacity = 4
	tree := New(canvas(), capacity)

	// one point per quadrant plus one more, so every child stays a leaf
	points := []geo.Point{
		{X: 100, Y: 100},
		{X: 400, Y: 100},
		{X: 100, Y: 400},
		{X: 400, Y: 400},
	}
	tree.InsertPoints(points)
	require.True(t, tree.IsLeaf())
	require.Len(t, tree.Points(), capacity)

	require.True(t, tree.Insert(geo.Point{X: 50, Y: 60}))

	require.Len(t, tree.Children(), 4)
	assert.Empty(t, tree.Points())
	assert.False(t, tree.IsLeaf())

	total := 0
	for _, child := range tree.Children() {
		assert.True(t, child.IsLeaf())
		assert.Equal(t, 1, child.Depth())
		assert.Equal(t, capacity, child.Capacity())
		total += len(child.Points())
	}
	assert.Equal(t, capacity+1, total)

	assert.Len(t, tree.Children()[0].Points(), 2)
	for _, p := range tree.Children()[0].Points() {
		assert.True(t, tree.Children()[0].Boundary().ContainsPoint(p))
	}
}

func TestSubdivide_ChildBoundaries(t *testing.T) {
	tree := New(canvas(), 1)
	tree.InsertPoints([]geo.Point{{X: 1, Y: 1}, {X: 499, Y: 499}})
	require.Len(t, tree.Children(), 4)

	expected := []geo.Rectangle{
		geo.NewRectangle(125, 125, 250, 250),
		geo.NewRectangle(375, 125, 250, 250),
		geo.NewRectangle(125, 375, 250, 250),
		geo.NewRectangle(375, 375, 250, 250),
	}
	for i, child := range tree.Children() {
		assert.Equal(t, expected[i], child.Boundary())
	}
}

func TestInsert_CoincidentPoints(t *testing.T) {
	tree := New(canvas(), 4)
	for i := 0; i < 5; i++ {
		require.True(t, tree.Insert(geo.Point{X: 10, Y: 10}))
	}

	require.Len(t, tree.Children(), 4)
	assert.Empty(t, tree.Points())

	nw := tree.Children()[0]
	assert.Equal(t, 5, nw.Len())
	for _, sibling := range tree.Children()[1:] {
		assert.Equal(t, 0, sibling.Len())
	}

	stats := tree.Stats()
	assert.Equal(t, 5, stats.Points)
	assert.Equal(t, DefaultMaxDepth, stats.Height)
	assert.Equal(t, 1, stats.Overflowing)
}

func TestInsert_DepthGuard(t *testing.T) {
	tree := NewWithMaxDepth(canvas(), 1, 3)
	for i := 0; i < 10; i++ {
		require.True(t, tree.Insert(geo.Point{X: 300, Y: 300}))
	}

	stats := tree.Stats()
	assert.Equal(t, 3, stats.Height)
	assert.Equal(t, 10, stats.Points)
	assert.Equal(t, 1, stats.Overflowing)
	assert.Equal(t, 13, stats.Nodes)
	assert.Equal(t, 10, stats.Leaves)

	tree.Walk(func(n *Node) bool {
		assert.LessOrEqual(t, n.Depth(), 3)
		return true
	})
}

func TestInsert_SharedBorderGoesToFirstChild(t *testing.T) {
	tree := New(canvas(), 1)
	tree.Insert(geo.Point{X: 400, Y: 400})
	// (250, 250) lies on all four child boundaries
	require.True(t, tree.Insert(geo.Point{X: 250, Y: 250}))

	require.Len(t, tree.Children(), 4)
	assert.Equal(t, []geo.Point{{X: 250, Y: 250}}, tree.Children()[0].Points())
	assert.Equal(t, []geo.Point{{X: 400, Y: 400}}, tree.Children()[3].Points())
	assert.Equal(t, 2, tree.Len())
}

func TestInsertPoints_AlwaysTrue(t *testing.T) {
	tree := New(canvas(), 4)
	ok := tree.InsertPoints([]geo.Point{{X: -5, Y: -5}, {X: 5, Y: 5}, {X: 600, Y: 5}})
	assert.True(t, ok)
	assert.Equal(t, 1, tree.Len())
	assert.True(t, New(canvas(), 4).InsertPoints(nil))
}

func TestQueryRange_SmallWindow(t *testing.T) {
	tree := New(canvas(), 10)
	tree.InsertPoints([]geo.Point{{X: 5, Y: 5}, {X: 495, Y: 495}})

	found := tree.QueryRange(geo.NewRectangle(0, 0, 20, 20))
	assert.Equal(t, []geo.Point{{X: 5, Y: 5}}, found)
}

func TestQueryRange_ChildBoundary(t *testing.T) {
	tree := New(canvas(), 2)
	nwPoints := []geo.Point{{X: 10, Y: 20}, {X: 200, Y: 30}, {X: 240, Y: 240}}
	others := []geo.Point{{X: 300, Y: 20}, {X: 260, Y: 260}, {X: 20, Y: 490}, {X: 499, Y: 499}}
	tree.InsertPoints(append(append([]geo.Point{}, nwPoints...), others...))
	require.Len(t, tree.Children(), 4)

	for _, sibling := range tree.Children()[1:] {
		require.Greater(t, sibling.Len(), 0)
	}

	found := tree.QueryRange(tree.Children()[0].Boundary())
	assert.ElementsMatch(t, nwPoints, found)
}

func TestQueryRange_DisjointIsPruned(t *testing.T) {
	tree := New(canvas(), 4)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		tree.Insert(geo.Point{X: r.Float64() * 500, Y: r.Float64() * 500})
	}
	require.False(t, tree.IsLeaf())

	calls := 0
	query := countingBoundary{Rectangle: geo.NewRectangle(-1000, -1000, 100, 100), calls: &calls}
	found := tree.QueryRange(query)

	assert.Empty(t, found)
	assert.Equal(t, 1, calls, "a disjoint query must not descend below the root")
}

func TestQueryRange_VisitsOnlyIntersectingNodes(t *testing.T) {
	tree := New(canvas(), 1)
	tree.InsertPoints([]geo.Point{{X: 10, Y: 10}, {X: 490, Y: 10}, {X: 10, Y: 490}, {X: 490, Y: 490}})
	require.Len(t, tree.Children(), 4)

	calls := 0
	query := countingBoundary{Rectangle: geo.NewRectangle(50, 50, 20, 20), calls: &calls}
	assert.Empty(t, tree.QueryRange(query))
	// root plus its four children; no child is subdivided
	assert.Equal(t, 5, calls)
}

func TestQueryRangeInto_Accumulates(t *testing.T) {
	tree := New(canvas(), 4)
	tree.InsertPoints([]geo.Point{{X: 10, Y: 10}, {X: 20, Y: 20}})

	seed := []geo.Point{{X: -1, Y: -1}}
	found := tree.QueryRangeInto(geo.NewRectangle(15, 15, 30, 30), seed)
	assert.Equal(t, []geo.Point{{X: -1, Y: -1}, {X: 10, Y: 10}, {X: 20, Y: 20}}, found)

	found = tree.QueryRangeInto(geo.NewRectangle(2000, 2000, 1, 1), found)
	assert.Len(t, found, 3)
}

func TestQueryRange_MatchesBruteForce(t *testing.T) {
	for _, capacity := range []int{1, 2, 4, 10} {
		r := rand.New(rand.NewSource(int64(capacity)))
		tree := New(canvas(), capacity)

		points := make([]geo.Point, 500)
		for i := range points {
			points[i] = geo.Point{X: r.Float64() * 500, Y: r.Float64() * 500}
		}
		// a few duplicates and exact border points
		points = append(points, points[0], points[1], geo.Point{X: 0, Y: 0}, geo.Point{X: 500, Y: 250})
		tree.InsertPoints(points)
		require.Equal(t, len(points), tree.Len())

		for i := 0; i < 50; i++ {
			query, ok := geo.RectangleFromCorners(r.Float64()*600-50, r.Float64()*600-50, r.Float64()*600-50, r.Float64()*600-50)
			require.True(t, ok)

			var want []geo.Point
			for _, p := range points {
				if query.ContainsPoint(p) {
					want = append(want, p)
				}
			}
			assert.ElementsMatch(t, want, tree.QueryRange(query), "capacity %d query %v", capacity, query)
		}
	}
}

func TestInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tree := New(canvas(), 3)
	for i := 0; i < 1000; i++ {
		tree.Insert(geo.Point{X: r.Float64() * 500, Y: r.Float64() * 500})
	}

	tree.Walk(func(n *Node) bool {
		if n.IsLeaf() {
			assert.LessOrEqual(t, len(n.Points()), n.Capacity())
			return true
		}
		assert.Len(t, n.Children(), 4)
		assert.Empty(t, n.Points())

		parent := n.Boundary().Bounds()
		for i, child := range n.Children() {
			assert.Equal(t, n.Depth()+1, child.Depth())
			assert.Equal(t, parent.Quarter(geo.Quadrants[i]), child.Boundary())
			child.Walk(func(d *Node) bool {
				for _, p := range d.Points() {
					assert.True(t, child.Boundary().ContainsPoint(p))
				}
				return true
			})
		}
		return true
	})

	stats := tree.Stats()
	assert.Equal(t, 1000, stats.Points)
	assert.Equal(t, 0, stats.Overflowing)
	assert.Equal(t, (stats.Nodes-1)/4*3+1, stats.Leaves)
}

func TestWalk_SkipsSubtree(t *testing.T) {
	tree := New(canvas(), 1)
	tree.InsertPoints([]geo.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 400, Y: 400}})

	visited := 0
	tree.Walk(func(n *Node) bool {
		visited++
		return n.Depth() == 0
	})
	assert.Equal(t, 5, visited)
}
