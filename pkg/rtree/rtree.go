// Package rtree provides an R-Tree backed point index with the same range
// query semantics as the quadtree. It serves as an independent reference for
// benchmarks and for cross-checking quadtree answers.
package rtree

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"
	"github.com/kass/go-quadtree/pkg/geo"
)

const (
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialPoint wraps a point to implement rtreego.Spatial
type spatialPoint struct {
	geo.Point
	rect rtreego.Rect
}

func (sp *spatialPoint) Bounds() rtreego.Rect {
	return sp.rect
}

// ReferenceIndex is a thread-safe R-Tree point index
type ReferenceIndex struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// NewReferenceIndex creates an empty index
func NewReferenceIndex() *ReferenceIndex {
	return &ReferenceIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// InsertPoints adds every point to the index
func (idx *ReferenceIndex) InsertPoints(points []geo.Point) {
	if len(points) == 0 {
		return
	}

	items := make([]*spatialPoint, len(points))
	for i, p := range points {
		items[i] = &spatialPoint{Point: p, rect: rtreego.Point{p.X, p.Y}.ToRect(0)}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, item := range items {
		idx.tree.Insert(item)
	}
	idx.itemCount.Add(int64(len(items)))
}

// QueryRange returns every indexed point contained in b
func (idx *ReferenceIndex) QueryRange(b geo.Boundary) []geo.Point {
	// rtreego excludes touching rectangles, so the search box is widened by
	// one float step on each edge and candidates are filtered exactly.
	env := b.Bounds()
	bounds, err := rtreego.NewRectFromPoints(
		rtreego.Point{math.Nextafter(env.Left(), math.Inf(-1)), math.Nextafter(env.Top(), math.Inf(-1))},
		rtreego.Point{math.Nextafter(env.Right(), math.Inf(1)), math.Nextafter(env.Bottom(), math.Inf(1))},
	)
	if err != nil {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := idx.tree.SearchIntersect(bounds)

	var points []geo.Point
	for _, result := range results {
		item, ok := result.(*spatialPoint)
		if !ok {
			continue
		}
		if b.ContainsPoint(item.Point) {
			points = append(points, item.Point)
		}
	}
	return points
}

// Count returns the number of indexed points
func (idx *ReferenceIndex) Count() int64 {
	return idx.itemCount.Load()
}

// Depth returns the height of the underlying R-Tree
func (idx *ReferenceIndex) Depth() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Depth()
}

// Clear removes all points from the index
func (idx *ReferenceIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	idx.itemCount.Store(0)
}
