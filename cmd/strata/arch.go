package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/pkg/analyzer/arch"
	"github.com/halcyonic/strata/pkg/analyzer/facts"
	"github.com/halcyonic/strata/pkg/analyzer/graph"
	"github.com/halcyonic/strata/pkg/config"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/urfave/cli/v2"
)

func archCmd() *cli.Command {
	return &cli.Command{
		Name:      "arch",
		Aliases:   []string{"architecture"},
		Usage:     "Assess architecture: bottlenecks, god modules, cycles, coupling, health score",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Analyze a committed git tree (branch, tag, or SHA) instead of the working directory",
			},
		},
		Action: runArchCmd,
	}
}

func runArchCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	report, err := buildArchReport(c, cfg, paths)
	if err != nil {
		return err
	}
	if report == nil {
		color.Yellow("No Python files found")
		return nil
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(report)
	}

	fmt.Fprintln(formatter.Writer(), report.Summary)

	if len(report.Recommendations) > 0 {
		var rows [][]string
		for _, rec := range report.Recommendations {
			rows = append(rows, []string{
				fmt.Sprintf("%d", rec.Priority),
				rec.Category,
				truncate(rec.Target, 50),
				rec.Effort,
				truncate(rec.Action, 70),
			})
		}
		table := output.NewTable(
			"Recommendations",
			[]string{"#", "Category", "Target", "Effort", "Action"},
			rows,
			nil,
			report,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	return nil
}

func buildArchReport(c *cli.Context, cfg *config.Config, paths []string) (*models.ArchReport, error) {
	analyzer := facts.New(facts.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	var results []*models.FileFacts
	var inventory []string
	root := docRoot(paths)

	if ref := c.String("ref"); ref != "" {
		tree, err := resolveTree(root, ref)
		if err != nil {
			return nil, err
		}
		python, all, err := treeFiles(tree, cfg)
		if err != nil {
			return nil, err
		}
		if len(python) == 0 {
			return nil, nil
		}
		ctx, bar := trackedContext(c.Context, "Assessing architecture @"+ref+"...", len(python))
		results, err = analyzer.AnalyzeFrom(ctx, python, source.NewTree(tree))
		bar.FinishSuccess()
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		inventory = all
	} else {
		files, err := scanFiles(cfg, paths)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, nil
		}
		relFiles := relativize(root, files)
		ctx, bar := trackedContext(c.Context, "Assessing architecture...", len(relFiles))
		results, err = analyzer.AnalyzeFrom(ctx, relFiles, source.NewFilesystemAt(root))
		bar.FinishSuccess()
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		inventory = scanInventory(cfg, paths)
	}

	doc := facts.BuildDocument(root, inventory, results)
	g := graph.Build(results)

	reasoner := arch.New(arch.WithThresholds(cfg.Thresholds))
	return reasoner.Analyze(results, g, doc.AllFiles), nil
}
