package main

import (
	"github.com/spf13/cobra"

	"github.com/kass/go-quadtree/pkg/viz"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive quadtree visualizer",
	Long: `Draw the tree and its points in the terminal. Drag with the left mouse
button to select a query rectangle; matching points are highlighted.`,
	RunE: runDemo,
}

func init() {
	treeFlags(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := applyTreeFlags(cmd, &cfg.Demo.Points); err != nil {
		return err
	}

	return viz.Run(viz.Options{
		Bounds:   cfg.Bounds(),
		Capacity: cfg.Tree.Capacity,
		MaxDepth: cfg.Tree.MaxDepth,
		Points:   cfg.Demo.Points,
		Seed:     cfg.Demo.Seed,

		Clustered: clustered,
	})
}
