package bench

import (
	"context"
	"testing"

	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
	"github.com/kass/go-quadtree/pkg/rtree"
	"github.com/kass/go-quadtree/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bounds = geo.NewRectangle(250, 250, 500, 500)

// fixedSearcher returns the same answer for every query
type fixedSearcher []geo.Point

func (f fixedSearcher) QueryRange(geo.Boundary) []geo.Point { return f }

func TestRandomQueries(t *testing.T) {
	queries := RandomQueries(100, bounds, 10, 1)
	require.Len(t, queries, 100)
	for _, q := range queries {
		assert.True(t, bounds.ContainsPoint(q.Center()))
		assert.Equal(t, 10.0, q.Width())
		assert.Equal(t, 10.0, q.Height())
	}
	assert.Equal(t, queries, RandomQueries(100, bounds, 10, 1))
}

func TestRun(t *testing.T) {
	searcher := fixedSearcher{{X: 1, Y: 1}, {X: 2, Y: 2}}
	queries := RandomQueries(250, bounds, 10, 2)

	result, err := Run(context.Background(), "fixed", searcher, queries, 4)
	require.NoError(t, err)

	assert.Equal(t, "fixed", result.Name)
	assert.Equal(t, 4, result.Workers)
	assert.Equal(t, 250, result.TotalQueries)
	assert.Equal(t, int64(500), result.TotalResults)
	assert.Equal(t, 2.0, result.AvgResults)
	assert.LessOrEqual(t, result.MinDuration, result.MaxDuration)
	assert.Greater(t, result.QueriesPerSec, 0.0)
}

func TestRun_NoQueries(t *testing.T) {
	result, err := Run(context.Background(), "empty", fixedSearcher{}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalQueries)
	assert.Greater(t, result.Workers, 0)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, "canceled", fixedSearcher{}, RandomQueries(10000, bounds, 1, 3), 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, result.TotalQueries, 10000)
}

func TestCompare(t *testing.T) {
	points := sample.Uniform(20000, bounds, 11, 0)

	tree := quadtree.New(bounds, 8)
	tree.InsertPoints(points)
	index := rtree.NewReferenceIndex()
	index.InsertPoints(points)

	queries := RandomQueries(200, bounds, 30, 4)
	assert.Empty(t, Compare(index, tree, queries))

	mismatches := Compare(index, fixedSearcher{}, queries[:5])
	for _, m := range mismatches {
		assert.Equal(t, 0, m.Actual)
		assert.Greater(t, m.Expected, 0)
	}
}

func TestSamePoints(t *testing.T) {
	a := []geo.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 2}}
	assert.True(t, samePoints(a, []geo.Point{{X: 3, Y: 4}, {X: 1, Y: 2}, {X: 1, Y: 2}}))
	assert.False(t, samePoints(a, []geo.Point{{X: 3, Y: 4}, {X: 3, Y: 4}, {X: 1, Y: 2}}))
	assert.False(t, samePoints(a, a[:2]))
	assert.True(t, samePoints(nil, []geo.Point{}))
}
