package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kass/go-quadtree/pkg/config"
	"github.com/kass/go-quadtree/pkg/console"
	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
	"github.com/kass/go-quadtree/pkg/sample"
)

var (
	configFile string
	verbose    bool

	// cfg is loaded by the root command before any subcommand runs
	cfg config.Config
	out = console.New(os.Stdout)
)

var rootCmd = &cobra.Command{
	Use:   "qtree",
	Short: "Point quadtree with rectangular range queries",
	Long: `A point-region quadtree over a rectangular world. Points are buffered in
leaves until a leaf is full, then the leaf is split into four quadrants.
Range queries prune every subtree whose boundary misses the query.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	numPoints int
	seed      int64
	capacity  int
	clustered bool
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("qtree: ")

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default config.yaml, then config.yaml.example)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(queryCmd, statsCmd, benchCmd, postgisCmd, demoCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var paths []string
	if configFile != "" {
		paths = []string{configFile}
	}

	loaded, path, err := config.LoadOrDefault(paths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = loaded

	switch {
	case path == config.ExampleFile:
		log.Printf("using %s (copy to %s for custom settings)", config.ExampleFile, config.DefaultFile)
	case path == "" && verbose:
		log.Printf("no config file found, using defaults")
	case verbose:
		log.Printf("using %s", path)
	}
	return nil
}

// treeFlags registers the flags shared by commands that build a tree from
// sample points.
func treeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&numPoints, "points", "p", 0, "Number of points to generate (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default from config)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Leaf capacity (default from config)")
	cmd.Flags().BoolVar(&clustered, "clustered", false, "Generate clustered instead of uniform points")
}

// applyTreeFlags copies explicitly set flags over the config values. points
// is the config field the command reads its point count from.
func applyTreeFlags(cmd *cobra.Command, points *int) error {
	if cmd.Flags().Changed("points") {
		*points = numPoints
	}
	if cmd.Flags().Changed("seed") {
		cfg.Demo.Seed = seed
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Tree.Capacity = capacity
	}
	return cfg.Validate()
}

// samplePoints generates n points over the configured world
func samplePoints(n int) []geo.Point {
	if clustered {
		return sample.Clustered(n, cfg.Bounds(), cfg.Demo.Seed, 8, 0)
	}
	return sample.Uniform(n, cfg.Bounds(), cfg.Demo.Seed, 0)
}

// buildTree inserts points into a new tree over the configured world.
func buildTree(points []geo.Point) *quadtree.Node {
	tree := quadtree.NewWithMaxDepth(cfg.Bounds(), cfg.Tree.Capacity, cfg.Tree.MaxDepth)
	tree.InsertPoints(points)
	return tree
}
