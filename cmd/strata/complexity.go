package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/pkg/analyzer/complexity"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/urfave/cli/v2"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Analyze cyclomatic complexity and nesting depth",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "threshold",
				Value: 10,
				Usage: "Complexity warning threshold",
			},
			&cli.BoolFlag{
				Name:  "functions-only",
				Usage: "Show only function-level metrics",
			},
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
	paths := getPaths(c)
	threshold := c.Int("threshold")
	functionsOnly := c.Bool("functions-only")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := scanFiles(cfg, paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No Python files found")
		return nil
	}

	cxAnalyzer := complexity.New(complexity.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer cxAnalyzer.Close()

	root := docRoot(paths)
	relFiles := relativize(root, files)

	ctx, bar := trackedContext(c.Context, "Analyzing complexity...", len(relFiles))
	analysis, err := cxAnalyzer.AnalyzeFrom(ctx, relFiles, source.NewFilesystemAt(root))
	bar.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	var warnings []string

	for _, fc := range analysis.Files {
		if functionsOnly {
			for _, fn := range fc.Functions {
				cx := fmt.Sprintf("%d", fn.Complexity)
				if fn.Complexity > threshold {
					cx = color.RedString("%d", fn.Complexity)
					warnings = append(warnings, fmt.Sprintf("%s:%d %s - complexity %d exceeds threshold %d",
						fc.Path, fn.StartLine, fn.Name, fn.Complexity, threshold))
				}
				rows = append(rows, []string{
					fc.Path,
					fn.Name,
					fmt.Sprintf("%d", fn.StartLine),
					cx,
					fmt.Sprintf("%d", fn.NestingDepth),
				})
			}
		} else {
			avg := fmt.Sprintf("%.1f", fc.AvgComplexity)
			if fc.AvgComplexity > float64(threshold) {
				avg = color.RedString("%.1f", fc.AvgComplexity)
			}
			rows = append(rows, []string{
				fc.Path,
				fmt.Sprintf("%d", len(fc.Functions)),
				avg,
				fmt.Sprintf("%d", fc.MaxComplexity),
			})
		}
	}

	var headers []string
	if functionsOnly {
		headers = []string{"File", "Function", "Line", "Complexity", "Nesting"}
	} else {
		headers = []string{"File", "Functions", "Avg Complexity", "Max Complexity"}
	}

	table := output.NewTable(
		"Complexity Analysis",
		headers,
		rows,
		[]string{
			fmt.Sprintf("Files: %d", analysis.Summary.TotalFiles),
			fmt.Sprintf("Functions: %d", analysis.Summary.TotalFunctions),
			fmt.Sprintf("Avg: %.1f", analysis.Summary.AvgComplexity),
			fmt.Sprintf("Max: %d", analysis.Summary.MaxComplexity),
		},
		analysis,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(warnings) > 0 && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Warnings (%d):", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}
