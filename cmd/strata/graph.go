package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/pkg/analyzer/graph"
	"github.com/halcyonic/strata/pkg/config"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/urfave/cli/v2"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"deps"},
		Usage:     "Build the module dependency graph (Mermaid output)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "cycles",
				Usage: "Include detected import cycles",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Show fan-in/fan-out and centrality summary",
			},
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Analyze a committed git tree (branch, tag, or SHA) instead of the working directory",
			},
		},
		Action: runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
	paths := getPaths(c)
	includeCycles := c.Bool("cycles")
	includeMetrics := c.Bool("metrics")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	g, err := buildGraph(c, cfg, paths)
	if err != nil {
		return err
	}
	if g == nil {
		color.Yellow("No Python files found")
		return nil
	}

	var cycles [][]string
	if includeCycles {
		cycles = graph.Cycles(g)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// Structured output carries the full graph.
	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		if includeCycles {
			return formatter.Output(struct {
				Graph  *models.DependencyGraph `json:"graph"`
				Cycles [][]string              `json:"cycles"`
			}{g, cycles})
		}
		return formatter.Output(g)
	}

	// Text and markdown render a Mermaid diagram.
	fmt.Fprintln(formatter.Writer(), g.ToMermaid())

	if includeCycles && len(cycles) > 0 {
		fmt.Fprintln(formatter.Writer())
		if formatter.Colored() {
			color.Yellow("Cycles (%d):", len(cycles))
		} else {
			fmt.Fprintf(formatter.Writer(), "Cycles (%d):\n", len(cycles))
		}
		for _, cycle := range cycles {
			fmt.Fprintf(formatter.Writer(), "  %s\n", strings.Join(cycle, " -> "))
		}
	}

	if includeMetrics {
		printGraphMetrics(formatter, g)
	}

	return nil
}

func buildGraph(c *cli.Context, cfg *config.Config, paths []string) (*models.DependencyGraph, error) {
	analyzer := graph.New(graph.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	if ref := c.String("ref"); ref != "" {
		tree, err := resolveTree(docRoot(paths), ref)
		if err != nil {
			return nil, err
		}
		python, _, err := treeFiles(tree, cfg)
		if err != nil {
			return nil, err
		}
		if len(python) == 0 {
			return nil, nil
		}
		ctx, bar := trackedContext(c.Context, "Building dependency graph @"+ref+"...", len(python))
		g, err := analyzer.AnalyzeFrom(ctx, python, source.NewTree(tree))
		bar.FinishSuccess()
		return g, err
	}

	files, err := scanFiles(cfg, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	root := docRoot(paths)
	relFiles := relativize(root, files)

	ctx, bar := trackedContext(c.Context, "Building dependency graph...", len(relFiles))
	g, err := analyzer.AnalyzeFrom(ctx, relFiles, source.NewFilesystemAt(root))
	bar.FinishSuccess()
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return g, nil
}

func printGraphMetrics(formatter *output.Formatter, g *models.DependencyGraph) {
	fmt.Fprintln(formatter.Writer())
	if formatter.Colored() {
		color.Cyan("Graph Metrics:")
	} else {
		fmt.Fprintln(formatter.Writer(), "Graph Metrics:")
	}
	fmt.Fprintf(formatter.Writer(), "  Modules: %d\n", g.ModuleCount())
	fmt.Fprintf(formatter.Writer(), "  Edges: %d\n", g.EdgeCount())
	fmt.Fprintf(formatter.Writer(), "  Density: %.4f\n", g.Density())

	if len(g.Centrality) > 0 {
		type ranked struct {
			module string
			rank   float64
		}
		top := make([]ranked, 0, len(g.Centrality))
		for m, r := range g.Centrality {
			top = append(top, ranked{m, r})
		}
		sort.Slice(top, func(i, j int) bool { return top[i].rank > top[j].rank })

		fmt.Fprintln(formatter.Writer())
		if formatter.Colored() {
			color.Cyan("Top Modules by PageRank:")
		} else {
			fmt.Fprintln(formatter.Writer(), "Top Modules by PageRank:")
		}
		for i, entry := range top {
			if i >= 5 {
				break
			}
			m := g.FanMetrics[entry.module]
			if m == nil {
				m = &models.FanMetrics{}
			}
			fmt.Fprintf(formatter.Writer(), "  %s: %.4f (in: %d, out: %d)\n",
				entry.module, entry.rank, m.FanIn, m.FanOut)
		}
	}
}
