package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kass/go-quadtree/pkg/geo"
)

var (
	x1, y1, x2, y2 float64
	jsonOutput     bool
	limit          int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a single range query",
	Long: `Build a tree from sample points and print the points inside the rectangle
spanned by the corners (x1,y1) and (x2,y2). The corners may be given in any order.`,
	Example: `  qtree query --x1 100 --y1 100 --x2 200 --y2 150
  qtree query --x1 0 --y1 0 --x2 50 --y2 50 --json --points 10000`,
	RunE: runQuery,
}

func init() {
	treeFlags(queryCmd)
	queryCmd.Flags().Float64Var(&x1, "x1", 0, "First corner x")
	queryCmd.Flags().Float64Var(&y1, "y1", 0, "First corner y")
	queryCmd.Flags().Float64Var(&x2, "x2", 0, "Second corner x")
	queryCmd.Flags().Float64Var(&y2, "y2", 0, "Second corner y")
	queryCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	queryCmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum points to list (0 for all)")
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		_ = queryCmd.MarkFlagRequired(name)
	}
}

// queryResult is the JSON form of a query answer
type queryResult struct {
	Query   [4]float64  `json:"query"`
	Total   int         `json:"total"`
	Elapsed string      `json:"elapsed"`
	Points  []geo.Point `json:"points"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := applyTreeFlags(cmd, &cfg.Demo.Points); err != nil {
		return err
	}

	query, ok := geo.RectangleFromCorners(x1, y1, x2, y2)
	if !ok {
		return fmt.Errorf("invalid query corners (%v,%v) (%v,%v)", x1, y1, x2, y2)
	}

	tree := buildTree(samplePoints(cfg.Demo.Points))

	start := time.Now()
	found := tree.QueryRange(query)
	elapsed := time.Since(start)

	listed := found
	if limit > 0 && len(listed) > limit {
		listed = listed[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(queryResult{
			Query:   [4]float64{query.Left(), query.Top(), query.Right(), query.Bottom()},
			Total:   len(found),
			Elapsed: elapsed.String(),
			Points:  listed,
		})
	}

	out.Title("Range Query")
	out.Stat("Tree points", tree.Len())
	out.Stat("Query", query)
	out.Stat("Matches", len(found))
	out.Stat("Elapsed", elapsed)
	if len(listed) > 0 {
		out.Subtitle("Points")
		for _, p := range listed {
			out.Info(p.String())
		}
	}
	if len(listed) < len(found) {
		out.Info(fmt.Sprintf("... %d more (use --limit 0 to list all)", len(found)-len(listed)))
	}
	return nil
}
