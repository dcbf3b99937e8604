package main

import (
	"fmt"

	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
	"github.com/kass/go-quadtree/pkg/rtree"
)

func main() {
	// A 500x500 world with room for 4 points per leaf
	world := geo.NewRectangle(250, 250, 500, 500)
	tree := quadtree.New(world, 4)

	points := []geo.Point{
		{X: 10, Y: 10},
		{X: 490, Y: 10},
		{X: 10, Y: 490},
		{X: 490, Y: 490},
		{X: 250, Y: 250},
		{X: 120, Y: 80},
		{X: 300, Y: 410},
	}

	// Example 1: Insert points one by one
	fmt.Println("=== Insert ===")
	for _, p := range points {
		fmt.Printf("  insert %s: %v\n", p, tree.Insert(p))
	}
	fmt.Printf("  insert %s: %v (outside the world)\n", geo.NewPoint(600, 10), tree.Insert(geo.NewPoint(600, 10)))

	// Example 2: The fifth point split the root into four quadrants
	fmt.Println("\n=== Tree Shape ===")
	tree.Walk(func(n *quadtree.Node) bool {
		fmt.Printf("%*s%s points=%d\n", 2+2*n.Depth(), "", n.Boundary().Bounds(), len(n.Points()))
		return true
	})

	// Example 3: Range query, corners in any order
	fmt.Println("\n=== Points in the Upper Left ===")
	query, _ := geo.RectangleFromCorners(260, 260, 0, 0)
	for _, p := range tree.QueryRange(query) {
		fmt.Printf("  - %s\n", p)
	}

	// Example 4: Reuse one result slice across queries
	fmt.Println("\n=== Row Scan ===")
	var found []geo.Point
	for y := 0.0; y < 500; y += 125 {
		found = tree.QueryRangeInto(geo.NewRectangle(250, y+62.5, 500, 125), found[:0])
		fmt.Printf("  rows %3.0f-%3.0f: %d points\n", y, y+125, len(found))
	}

	// Example 5: Same answer from the R-Tree reference index
	fmt.Println("\n=== R-Tree Cross-Check ===")
	ref := rtree.NewReferenceIndex()
	ref.InsertPoints(points)
	fmt.Printf("  quadtree: %d, rtree: %d\n", len(tree.QueryRange(query)), len(ref.QueryRange(query)))

	stats := tree.Stats()
	fmt.Printf("\nNodes: %d, leaves: %d, height: %d, points: %d\n", stats.Nodes, stats.Leaves, stats.Height, stats.Points)
}
