package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the shape of a tree built from sample points",
	RunE:  runStats,
}

func init() {
	treeFlags(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := applyTreeFlags(cmd, &cfg.Demo.Points); err != nil {
		return err
	}

	points := samplePoints(cfg.Demo.Points)

	start := time.Now()
	tree := buildTree(points)
	buildTime := time.Since(start)

	stats := tree.Stats()

	out.Title("Quadtree Stats")
	out.Stat("World", cfg.Bounds())
	out.Stat("Capacity", tree.Capacity())
	out.Stat("Max depth", tree.MaxDepth())
	out.Stat("Points", stats.Points)
	out.Stat("Nodes", stats.Nodes)
	out.Stat("Leaves", stats.Leaves)
	out.Stat("Height", stats.Height)
	out.Stat("Build time", buildTime)
	if buildTime > 0 {
		out.Stat("Points per second", fmt.Sprintf("%.0f", float64(len(points))/buildTime.Seconds()))
	}

	if stats.Points != len(points) {
		out.Error(fmt.Sprintf("%d points were rejected", len(points)-stats.Points))
	}
	if stats.Overflowing > 0 {
		out.Info(fmt.Sprintf("%d leaves hit the depth guard and hold more than %d points", stats.Overflowing, tree.Capacity()))
	}
	return nil
}
