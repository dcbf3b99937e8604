package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/go-quadtree/pkg/bench"
	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/rtree"
)

var (
	numQueries int
	numWorkers int
	querySize  float64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the quadtree against an R-Tree",
	Long: `Load the same points into the quadtree and into an rtreego R-Tree, run the
same random range queries against both with a pool of workers, and check
that both indexes return the same points for every query.`,
	RunE: runBench,
}

func init() {
	treeFlags(benchCmd)
	benchCmd.Flags().IntVarP(&numQueries, "queries", "q", 0, "Number of queries (default from config)")
	benchCmd.Flags().IntVarP(&numWorkers, "workers", "w", 0, "Number of worker goroutines (default from config, 0 for one per CPU)")
	benchCmd.Flags().Float64Var(&querySize, "size", 0, "Side of the square queries (default from config)")
}

func applyBenchFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("queries") {
		cfg.Bench.Queries = numQueries
	}
	if cmd.Flags().Changed("workers") {
		cfg.Bench.Workers = numWorkers
	}
	if cmd.Flags().Changed("size") {
		cfg.Bench.QuerySize = querySize
	}
	return applyTreeFlags(cmd, &cfg.Bench.Points)
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := applyBenchFlags(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()

	out.Title("Quadtree vs R-Tree")
	out.Info(fmt.Sprintf("Generating %d points...", cfg.Bench.Points))
	points := samplePoints(cfg.Bench.Points)

	out.Subtitle("Loading")
	start := time.Now()
	tree := buildTree(points)
	treeLoad := time.Since(start)
	out.Stat("Quadtree load time", treeLoad)

	start = time.Now()
	ref := rtree.NewReferenceIndex()
	ref.InsertPoints(points)
	refLoad := time.Since(start)
	out.Stat("R-Tree load time", refLoad)

	queries := bench.RandomQueries(cfg.Bench.Queries, cfg.Bounds(), cfg.Bench.QuerySize, cfg.Demo.Seed)

	out.Subtitle("Range Queries")
	treeResult, err := bench.Run(ctx, "quadtree", tree, queries, cfg.Bench.Workers)
	if err != nil {
		return fmt.Errorf("quadtree benchmark failed: %w", err)
	}
	printResult(treeResult)

	refResult, err := bench.Run(ctx, "rtree", ref, queries, cfg.Bench.Workers)
	if err != nil {
		return fmt.Errorf("rtree benchmark failed: %w", err)
	}
	printResult(refResult)
	printComparison(treeResult, refResult)

	return checkParity("R-Tree", ref, tree, queries)
}

func printResult(r bench.Result) {
	out.Subtitle(r.Name)
	out.Stat("Queries", r.TotalQueries)
	out.Stat("Workers", r.Workers)
	out.Stat("Total time", r.TotalDuration)
	out.Stat("Queries per second", fmt.Sprintf("%.0f", r.QueriesPerSec))
	out.Stat("Average latency", r.AvgDuration)
	out.Stat("Min/Max latency", fmt.Sprintf("%v / %v", r.MinDuration, r.MaxDuration))
	out.Stat("Average results", fmt.Sprintf("%.1f", r.AvgResults))
}

func printComparison(a, b bench.Result) {
	if a.QueriesPerSec == 0 || b.QueriesPerSec == 0 {
		return
	}
	out.Subtitle("Comparison")
	if a.QueriesPerSec >= b.QueriesPerSec {
		out.Success(fmt.Sprintf("%s is %.1fx faster than %s", a.Name, a.QueriesPerSec/b.QueriesPerSec, b.Name))
	} else {
		out.Info(fmt.Sprintf("%s is %.1fx faster than %s", b.Name, b.QueriesPerSec/a.QueriesPerSec, a.Name))
	}
}

// checkParity reports every query on which the quadtree disagrees with the
// reference index.
func checkParity(refName string, ref, tree bench.Searcher, queries []geo.Rectangle) error {
	out.Subtitle("Parity")
	mismatches := bench.Compare(ref, tree, queries)
	if len(mismatches) == 0 {
		out.Success(fmt.Sprintf("quadtree matches %s on all %d queries", refName, len(queries)))
		return nil
	}

	for i, m := range mismatches {
		if i == 5 && !verbose {
			out.Info(fmt.Sprintf("... %d more (use --verbose to list all)", len(mismatches)-i))
			break
		}
		out.Error(fmt.Sprintf("query %s: %s returned %d points, quadtree %d", m.Query, refName, m.Expected, m.Actual))
	}
	return fmt.Errorf("quadtree disagrees with %s on %d of %d queries", refName, len(mismatches), len(queries))
}
