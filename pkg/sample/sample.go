// Package sample generates random point sets inside a rectangle. Generation
// is split into fixed-size chunks, each with its own seeded generator, so
// the output for a seed does not depend on the number of workers.
package sample

import (
	"math/rand"
	"runtime"

	"github.com/kass/go-quadtree/pkg/geo"
	"golang.org/x/sync/errgroup"
)

const chunkSize = 4096

// Uniform returns n points uniformly distributed over bounds
func Uniform(n int, bounds geo.Rectangle, seed int64, workers int) []geo.Point {
	return generate(n, seed, workers, func(r *rand.Rand, _ int) geo.Point {
		return uniformIn(r, bounds)
	})
}

// Clustered returns n points gathered around a few random centers, with a
// fifth of them scattered uniformly as background noise.
func Clustered(n int, bounds geo.Rectangle, seed int64, clusters, workers int) []geo.Point {
	if clusters <= 0 {
		clusters = 1
	}

	// centers come from their own generator so every chunk agrees on them
	r := rand.New(rand.NewSource(seed))
	centers := make([]geo.Point, clusters)
	for i := range centers {
		centers[i] = uniformIn(r, bounds)
	}
	spreadX := bounds.Width() / 20
	spreadY := bounds.Height() / 20

	return generate(n, seed+1, workers, func(r *rand.Rand, _ int) geo.Point {
		if r.Intn(5) == 0 {
			return uniformIn(r, bounds)
		}
		c := centers[r.Intn(len(centers))]
		return clamp(geo.Point{
			X: c.X + r.NormFloat64()*spreadX,
			Y: c.Y + r.NormFloat64()*spreadY,
		}, bounds)
	})
}

func generate(n int, seed int64, workers int, next func(r *rand.Rand, i int) geo.Point) []geo.Point {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	points := make([]geo.Point, n)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		start := start
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed + int64(start/chunkSize)))
			for i := start; i < end; i++ {
				points[i] = next(r, i)
			}
			return nil
		})
	}
	// workers never fail
	g.Wait()

	return points
}

func uniformIn(r *rand.Rand, bounds geo.Rectangle) geo.Point {
	return geo.Point{
		X: bounds.Left() + r.Float64()*bounds.Width(),
		Y: bounds.Top() + r.Float64()*bounds.Height(),
	}
}

func clamp(p geo.Point, bounds geo.Rectangle) geo.Point {
	if p.X < bounds.Left() {
		p.X = bounds.Left()
	}
	if p.X > bounds.Right() {
		p.X = bounds.Right()
	}
	if p.Y < bounds.Top() {
		p.Y = bounds.Top()
	}
	if p.Y > bounds.Bottom() {
		p.Y = bounds.Bottom()
	}
	return p
}
