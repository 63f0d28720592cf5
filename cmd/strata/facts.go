package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/halcyonic/strata/internal/cache"
	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/pkg/analyzer/facts"
	"github.com/halcyonic/strata/pkg/config"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/urfave/cli/v2"
)

func factsCmd() *cli.Command {
	return &cli.Command{
		Name:      "facts",
		Aliases:   []string{"extract"},
		Usage:     "Extract per-file facts and project metrics",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Analyze a committed git tree (branch, tag, or SHA) instead of the working directory",
			},
		},
		Action: runFactsCmd,
	}
}

func runFactsCmd(c *cli.Context) error {
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

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, f := range doc.Files {
		if f.Failed() {
			rows = append(rows, []string{f.Path, color.RedString("parse error"), "", "", ""})
			continue
		}
		rows = append(rows, []string{
			f.Path,
			fmt.Sprintf("%d", len(f.Functions)),
			fmt.Sprintf("%d", len(f.Classes)),
			fmt.Sprintf("%d", len(f.Imports)),
			fmt.Sprintf("%d", f.TotalLines),
		})
	}

	table := output.NewTable(
		"Project Facts",
		[]string{"File", "Functions", "Classes", "Imports", "Lines"},
		rows,
		[]string{
			fmt.Sprintf("Python files: %d", doc.Summary.TotalPythonFiles),
			fmt.Sprintf("Functions: %d", doc.Summary.TotalFunctions),
			fmt.Sprintf("Classes: %d", doc.Summary.TotalClasses),
			fmt.Sprintf("Code lines: %d", doc.Summary.TotalCodeLines),
		},
		doc,
	)

	return formatter.Output(table)
}

// buildFactsDocument runs the extraction pipeline for the CLI commands that
// consume the full document. Returns nil when no Python files exist.
func buildFactsDocument(c *cli.Context, cfg *config.Config, paths []string) (*models.FactsDocument, error) {
	if ref := c.String("ref"); ref != "" {
		return factsFromRef(c, cfg, paths, ref)
	}

	files, err := scanFiles(cfg, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	cch, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled && !c.Bool("no-cache"))
	if err == nil {
		hash := cache.HashFileSet(files)
		if data, ok := cch.GetWithHash("facts", hash); ok {
			var doc models.FactsDocument
			if json.Unmarshal(data, &doc) == nil {
				return &doc, nil
			}
		}

		doc, err := extractFacts(c, cfg, paths, files)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(doc); err == nil {
			_ = cch.SetWithHash("facts", hash, data)
		}
		return doc, nil
	}

	return extractFacts(c, cfg, paths, files)
}

func extractFacts(c *cli.Context, cfg *config.Config, paths, files []string) (*models.FactsDocument, error) {
	analyzer := facts.New(facts.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	// Facts are keyed root-relative so module identifiers resolve Python
	// imports and documents match the git-tree analysis form.
	root := docRoot(paths)
	relFiles := relativize(root, files)

	ctx, bar := trackedContext(c.Context, "Extracting facts...", len(relFiles))
	results, err := analyzer.AnalyzeFrom(ctx, relFiles, source.NewFilesystemAt(root))
	bar.FinishSuccess()
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	return facts.BuildDocument(root, scanInventory(cfg, paths), results), nil
}

func factsFromRef(c *cli.Context, cfg *config.Config, paths []string, ref string) (*models.FactsDocument, error) {
	root := docRoot(paths)
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

	analyzer := facts.New(facts.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	ctx, bar := trackedContext(c.Context, "Extracting facts @"+ref+"...", len(python))
	results, err := analyzer.AnalyzeFrom(ctx, python, source.NewTree(tree))
	bar.FinishSuccess()
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	return facts.BuildDocument(root, all, results), nil
}
