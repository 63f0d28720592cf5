package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/internal/scanner"
	"github.com/halcyonic/strata/pkg/analyzer/arch"
	"github.com/halcyonic/strata/pkg/analyzer/complexity"
	"github.com/halcyonic/strata/pkg/analyzer/facts"
	"github.com/halcyonic/strata/pkg/analyzer/graph"
	"github.com/halcyonic/strata/pkg/config"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"
)

// Common input structures for tools

// AnalyzeInput is the base input for all analyze tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// ComplexityInput adds complexity-specific options.
type ComplexityInput struct {
	AnalyzeInput
	Threshold int `json:"threshold,omitempty" jsonschema:"Only include functions with cyclomatic complexity at or above this value."`
}

// GraphInput adds graph-specific options.
type GraphInput struct {
	AnalyzeInput
	IncludeCycles bool `json:"include_cycles,omitempty" jsonschema:"Include detected import cycles in the output."`
}

// Helper functions

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(input AnalyzeInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// scanPaths expands the requested paths into Python source files. Directory
// paths are walked recursively; file paths are kept when the scanner
// recognizes them.
func scanPaths(s *scanner.Scanner, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := s.ScanDir(p)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if !seen[f] {
					seen[f] = true
					files = append(files, f)
				}
			}
			continue
		}
		ok, err := s.ScanFile(p)
		if err != nil {
			return nil, err
		}
		if ok && !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	sort.Strings(files)
	return files, nil
}

// scanInventory collects every recognized file under the directory paths,
// used for the project inventory and pattern detection.
func scanInventory(s *scanner.Scanner, paths []string) []string {
	seen := make(map[string]bool)
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		found, err := s.ScanAll(p)
		if err != nil {
			continue
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files
}

// rootOf picks the document root: the first directory path, falling back to
// the current directory.
func rootOf(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return "."
}

// relativize rewrites scanned file paths relative to root so fact documents
// and module identifiers use root-relative form. Paths outside root are kept.
func relativize(root string, files []string) []string {
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil || strings.HasPrefix(r, "..") {
			rel = append(rel, f)
			continue
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

// Tool handlers

func handleAnalyzeFacts(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input)
	format := getFormat(input)

	cfg := config.DefaultConfig()
	sc := scanner.NewScanner(cfg)

	files, err := scanPaths(sc, paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no Python files found")
	}

	analyzer := facts.New(facts.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	root := rootOf(paths)
	results, err := analyzer.AnalyzeFrom(ctx, relativize(root, files), source.NewFilesystemAt(root))
	if err != nil {
		return toolError(err.Error())
	}

	doc := facts.BuildDocument(root, scanInventory(sc, paths), results)
	return toolResult(doc, format)
}

func handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input ComplexityInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input.AnalyzeInput)
	format := getFormat(input.AnalyzeInput)

	cfg := config.DefaultConfig()
	sc := scanner.NewScanner(cfg)

	files, err := scanPaths(sc, paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no Python files found")
	}

	analyzer := complexity.New(complexity.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	root := rootOf(paths)
	result, err := analyzer.AnalyzeFrom(ctx, relativize(root, files), source.NewFilesystemAt(root))
	if err != nil {
		return toolError(err.Error())
	}

	if input.Threshold > 0 {
		result = filterByThreshold(result, input.Threshold)
	}
	return toolResult(result, format)
}

// filterByThreshold drops functions below the complexity floor and prunes
// files left with no functions. The summary keeps project-wide statistics.
func filterByThreshold(a *complexity.Analysis, threshold int) *complexity.Analysis {
	filtered := &complexity.Analysis{Summary: a.Summary}
	for _, f := range a.Files {
		kept := f
		kept.Functions = nil
		for _, fn := range f.Functions {
			if fn.Complexity >= threshold {
				kept.Functions = append(kept.Functions, fn)
			}
		}
		if len(kept.Functions) > 0 {
			filtered.Files = append(filtered.Files, kept)
		}
	}
	return filtered
}

func handleAnalyzeGraph(ctx context.Context, req *mcp.CallToolRequest, input GraphInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input.AnalyzeInput)
	format := getFormat(input.AnalyzeInput)

	cfg := config.DefaultConfig()
	sc := scanner.NewScanner(cfg)

	files, err := scanPaths(sc, paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no Python files found")
	}

	analyzer := graph.New(graph.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	root := rootOf(paths)
	g, err := analyzer.AnalyzeFrom(ctx, relativize(root, files), source.NewFilesystemAt(root))
	if err != nil {
		return toolError(err.Error())
	}

	if input.IncludeCycles {
		out := struct {
			Graph  any        `json:"graph"`
			Cycles [][]string `json:"cycles"`
		}{g, graph.Cycles(g)}
		return toolResult(out, format)
	}
	return toolResult(g, format)
}

func handleAnalyzeArchitecture(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	paths := getPaths(input)
	format := getFormat(input)

	cfg := config.DefaultConfig()
	sc := scanner.NewScanner(cfg)

	files, err := scanPaths(sc, paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no Python files found")
	}

	analyzer := facts.New(facts.WithMaxFileSize(cfg.Analysis.MaxFileSize))
	defer analyzer.Close()

	root := rootOf(paths)
	results, err := analyzer.AnalyzeFrom(ctx, relativize(root, files), source.NewFilesystemAt(root))
	if err != nil {
		return toolError(err.Error())
	}

	doc := facts.BuildDocument(root, scanInventory(sc, paths), results)
	g := graph.Build(results)

	report := arch.New(arch.WithThresholds(cfg.Thresholds)).Analyze(results, g, doc.AllFiles)
	return toolResult(report, format)
}
