package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/pkg/analyzer/arch"
	"github.com/halcyonic/strata/pkg/analyzer/graph"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/urfave/cli/v2"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Run the full pipeline: facts, dependency graph, and architecture assessment",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Analyze a committed git tree (branch, tag, or SHA) instead of the working directory",
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate the report against the embedded JSON Schema before output",
			},
		},
		Action: runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	doc, err := buildFactsDocument(c, cfg, paths)
	if err != nil {
		return err
	}
	if doc == nil {
		color.Yellow("No Python files found")
		return nil
	}

	report := &models.Report{FactsDocument: doc}

	var g *models.DependencyGraph
	if cfg.Analysis.Graph || cfg.Analysis.Architecture {
		g = graph.Build(doc.Files)
		report.DependencyGraph = g
	}
	if cfg.Analysis.Architecture {
		reasoner := arch.New(arch.WithThresholds(cfg.Thresholds))
		report.Architecture = reasoner.Analyze(doc.Files, g, doc.AllFiles)
	}

	if c.Bool("validate") {
		data, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("serializing report: %w", err)
		}
		if err := models.ValidateReport(data); err != nil {
			return err
		}
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(report)
	}

	if report.Architecture != nil {
		fmt.Fprintln(formatter.Writer(), report.Architecture.Summary)
	}
	fmt.Fprintf(formatter.Writer(), "Python files: %d  Functions: %d  Classes: %d\n",
		doc.Summary.TotalPythonFiles,
		doc.Summary.TotalFunctions,
		doc.Summary.TotalClasses,
	)
	if g != nil {
		fmt.Fprintf(formatter.Writer(), "Modules in graph: %d  Edges: %d\n", g.ModuleCount(), g.EdgeCount())
	}
	return nil
}
