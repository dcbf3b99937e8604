// Package bench runs batches of range queries against a point index and
// reports throughput and latency.
package bench

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kass/go-quadtree/pkg/geo"
)

// Searcher is a read-only point index
type Searcher interface {
	QueryRange(b geo.Boundary) []geo.Point
}

// Result summarizes one benchmark run
type Result struct {
	Name          string
	TotalQueries  int
	Workers       int
	TotalDuration time.Duration
	AvgDuration   time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	QueriesPerSec float64
	TotalResults  int64
	AvgResults    float64
}

// RandomQueries returns n square queries of the given side whose centers
// lie inside bounds.
func RandomQueries(n int, bounds geo.Rectangle, size float64, seed int64) []geo.Rectangle {
	r := rand.New(rand.NewSource(seed))
	queries := make([]geo.Rectangle, n)
	for i := range queries {
		cx := bounds.Left() + r.Float64()*bounds.Width()
		cy := bounds.Top() + r.Float64()*bounds.Height()
		queries[i] = geo.NewRectangle(cx, cy, size, size)
	}
	return queries
}

// Run executes every query against s using a pool of workers. The index
// must not be mutated while Run is in progress.
func Run(ctx context.Context, name string, s Searcher, queries []geo.Rectangle, workers int) (Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	result := Result{Name: name, Workers: workers}
	if len(queries) == 0 {
		return result, nil
	}

	var (
		totalResults atomic.Int64
		completed    atomic.Int64
		mu           sync.Mutex
		minDuration  = time.Duration(1<<63 - 1)
		maxDuration  time.Duration
	)

	queryCh := make(chan geo.Rectangle)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queryCh)
		for _, q := range queries {
			select {
			case queryCh <- q:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	start := time.Now()
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			localMin, localMax := time.Duration(1<<63-1), time.Duration(0)
			for q := range queryCh {
				queryStart := time.Now()
				found := s.QueryRange(q)
				d := time.Since(queryStart)

				if d < localMin {
					localMin = d
				}
				if d > localMax {
					localMax = d
				}
				totalResults.Add(int64(len(found)))
				completed.Add(1)
			}

			mu.Lock()
			if localMin < minDuration {
				minDuration = localMin
			}
			if localMax > maxDuration {
				maxDuration = localMax
			}
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	elapsed := time.Since(start)

	n := int(completed.Load())
	result.TotalQueries = n
	result.TotalDuration = elapsed
	result.TotalResults = totalResults.Load()
	if n > 0 {
		result.AvgDuration = elapsed / time.Duration(n)
		result.MinDuration = minDuration
		result.MaxDuration = maxDuration
		result.QueriesPerSec = float64(n) / elapsed.Seconds()
		result.AvgResults = float64(result.TotalResults) / float64(n)
	}
	return result, err
}

// Mismatch records a query on which two indexes disagree
type Mismatch struct {
	Query    geo.Rectangle
	Expected int
	Actual   int
}

// Compare runs every query against both indexes and returns the queries
// whose result sets differ.
func Compare(expected, actual Searcher, queries []geo.Rectangle) []Mismatch {
	var mismatches []Mismatch
	for _, q := range queries {
		want := expected.QueryRange(q)
		got := actual.QueryRange(q)
		if !samePoints(want, got) {
			mismatches = append(mismatches, Mismatch{Query: q, Expected: len(want), Actual: len(got)})
		}
	}
	return mismatches
}

// samePoints compares two result sets as multisets
func samePoints(a, b []geo.Point) bool {
	if len(a) != len(b) {
		return false
	}
	sortPoints := func(points []geo.Point) []geo.Point {
		sorted := append([]geo.Point(nil), points...)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].X != sorted[j].X {
				return sorted[i].X < sorted[j].X
			}
			return sorted[i].Y < sorted[j].Y
		})
		return sorted
	}
	sa, sb := sortPoints(a), sortPoints(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
