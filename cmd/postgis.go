package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/go-quadtree/pkg/bench"
	"github.com/kass/go-quadtree/pkg/postgis"
)

var dsn string

var postgisCmd = &cobra.Command{
	Use:   "postgis",
	Short: "Cross-check the quadtree against PostGIS",
	Long: `Load the sample points into a PostGIS table with a GIST index, run random
range queries against the database and the quadtree, and check that both
return the same points. Connection settings come from the postgis config
section unless --dsn is given.`,
	RunE: runPostGIS,
}

func init() {
	treeFlags(postgisCmd)
	postgisCmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (overrides the postgis config section)")
	postgisCmd.Flags().IntVarP(&numQueries, "queries", "q", 0, "Number of queries (default from config)")
	postgisCmd.Flags().IntVarP(&numWorkers, "workers", "w", 0, "Number of worker goroutines (default from config, 0 for one per CPU)")
	postgisCmd.Flags().Float64Var(&querySize, "size", 0, "Side of the square queries (default from config)")
}

func openStore(ctx context.Context) (*postgis.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if dsn != "" {
		return postgis.OpenDSN(connectCtx, dsn)
	}
	return postgis.Open(connectCtx, cfg.PostGIS)
}

func runPostGIS(cmd *cobra.Command, args []string) error {
	if err := applyBenchFlags(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()

	out.Title("Quadtree vs PostGIS")
	out.Info("Connecting to PostGIS...")
	store, err := openStore(ctx)
	if err != nil {
		out.Error("PostGIS is not reachable. Check the postgis config section or pass --dsn.")
		return err
	}
	defer store.Close()
	out.Success("Connected")

	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	points := samplePoints(cfg.Bench.Points)
	tree := buildTree(points)

	out.Subtitle("Loading")
	start := time.Now()
	err = store.BulkInsertPoints(ctx, points, func(loaded, total int) {
		out.Progress(loaded, total, "Inserting")
	})
	if err != nil {
		return err
	}
	if err := store.CreateSpatialIndex(ctx); err != nil {
		return err
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	out.Stat("Rows", count)
	out.Stat("Load time", time.Since(start))

	queries := bench.RandomQueries(cfg.Bench.Queries, cfg.Bounds(), cfg.Bench.QuerySize, cfg.Demo.Seed)
	searcher := store.Searcher(ctx)

	out.Subtitle("Range Queries")
	dbResult, err := bench.Run(ctx, "postgis", searcher, queries, cfg.Bench.Workers)
	if err != nil {
		return fmt.Errorf("postgis benchmark failed: %w", err)
	}
	if err := searcher.Err(); err != nil {
		return fmt.Errorf("postgis query failed: %w", err)
	}
	printResult(dbResult)

	treeResult, err := bench.Run(ctx, "quadtree", tree, queries, cfg.Bench.Workers)
	if err != nil {
		return fmt.Errorf("quadtree benchmark failed: %w", err)
	}
	printResult(treeResult)
	printComparison(treeResult, dbResult)

	if err := checkParity("PostGIS", searcher, tree, queries); err != nil {
		return err
	}
	return searcher.Err()
}
