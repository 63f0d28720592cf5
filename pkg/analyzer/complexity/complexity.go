// Package complexity computes branch-counting cyclomatic complexity and
// nesting depth for Python functions.
package complexity

import (
	"context"
	"sort"

	"github.com/halcyonic/strata/internal/fileproc"
	"github.com/halcyonic/strata/pkg/analyzer"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/parser"
	"github.com/halcyonic/strata/pkg/source"
	"github.com/halcyonic/strata/pkg/stats"
	sitter "github.com/smacker/go-tree-sitter"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// branchTypes are the node kinds that each add one decision point.
// elif clauses are separate nodes in tree-sitter, so every arm of an
// if/elif chain contributes exactly one increment.
var branchTypes = map[string]bool{
	"if_statement":           true,
	"elif_clause":            true,
	"conditional_expression": true,
	"for_statement":          true,
	"while_statement":        true,
	"except_clause":          true,
	"with_statement":         true,
	"assert_statement":       true,
}

// nestingTypes are the block kinds that deepen lexical nesting.
var nestingTypes = map[string]bool{
	"if_statement":    true,
	"for_statement":   true,
	"while_statement": true,
	"with_statement":  true,
	"try_statement":   true,
}

// Calculate computes the cyclomatic complexity of a function subtree.
// The base value is 1; each branch construct adds one. boolean_operator
// nodes are binary, so an n-operand and/or chain nests into n-1 nodes
// and contributes n-1. Each comprehension iteration clause (for_in_clause)
// adds one per clause.
func Calculate(node *sitter.Node, source []byte) int {
	complexity := 1

	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch {
		case branchTypes[nodeType]:
			complexity++
		case nodeType == "boolean_operator":
			complexity++
		case nodeType == "for_in_clause":
			complexity++
		}
		return true
	})

	return complexity
}

// MaxNesting returns the maximum lexical nesting depth of conditional,
// loop, resource, and exception blocks within a function subtree.
func MaxNesting(node *sitter.Node) int {
	return maxNestingAt(node, 0)
}

func maxNestingAt(node *sitter.Node, depth int) int {
	maxDepth := depth

	for i := range int(node.ChildCount()) {
		child := node.Child(i)

		childDepth := depth
		if nestingTypes[child.Type()] {
			childDepth++
		}
		if m := maxNestingAt(child, childDepth); m > maxDepth {
			maxDepth = m
		}
	}

	return maxDepth
}

// Analyzer computes per-function complexity across files.
type Analyzer struct {
	parser      *parser.Parser
	maxFileSize int64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// New creates a new complexity analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser:      parser.New(),
		maxFileSize: 0,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile analyzes complexity for a single file on disk.
func (a *Analyzer) AnalyzeFile(path string) (*FileResult, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return analyzeParseResult(result), nil
}

// AnalyzeSource analyzes complexity for in-memory source.
func (a *Analyzer) AnalyzeSource(source []byte, path string) (*FileResult, error) {
	result, err := a.parser.Parse(source, path)
	if err != nil {
		return nil, err
	}
	return analyzeParseResult(result), nil
}

// Analyze analyzes all files in parallel.
// Progress is tracked via context using analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	results, _ := fileproc.MapFilesWithSizeLimit(ctx, files, a.maxFileSize, func(psr *parser.Parser, path string) (FileResult, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return FileResult{}, err
		}
		return *analyzeParseResult(result), nil
	})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return buildAnalysis(results), nil
}

// AnalyzeFrom analyzes all files reading content from an arbitrary source,
// such as a git tree or a root-anchored filesystem.
func (a *Analyzer) AnalyzeFrom(ctx context.Context, files []string, src source.ContentSource) (*Analysis, error) {
	results := fileproc.MapSourceFilesWithSizeLimit(ctx, files, src, a.maxFileSize, func(psr *parser.Parser, path string, content []byte) (FileResult, error) {
		result, err := psr.Parse(content, path)
		if err != nil {
			return FileResult{}, err
		}
		return *analyzeParseResult(result), nil
	})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return buildAnalysis(results), nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// analyzeParseResult computes complexity for every function in a parse tree.
func analyzeParseResult(result *parser.ParseResult) *FileResult {
	fr := &FileResult{
		Path:      result.Path,
		Functions: make([]FunctionResult, 0),
	}

	for _, fn := range parser.GetFunctions(result) {
		cx := Calculate(fn.Node, result.Source)
		fr.Functions = append(fr.Functions, FunctionResult{
			Name:         fn.Name,
			StartLine:    fn.StartLine,
			EndLine:      fn.EndLine,
			Complexity:   cx,
			NestingDepth: MaxNesting(fn.Node),
			Lines:        int(fn.EndLine - fn.StartLine + 1),
		})

		fr.TotalComplexity += cx
		if cx > fr.MaxComplexity {
			fr.MaxComplexity = cx
		}
	}

	if len(fr.Functions) > 0 {
		fr.AvgComplexity = stats.Round2(float64(fr.TotalComplexity) / float64(len(fr.Functions)))
	}

	return fr
}

// buildAnalysis constructs the project-level summary from file results.
func buildAnalysis(results []FileResult) *Analysis {
	analysis := &Analysis{
		Files: results,
		Summary: Summary{
			TotalFiles: len(results),
			Distribution: map[string]int{
				models.BandLow:      0,
				models.BandMedium:   0,
				models.BandHigh:     0,
				models.BandCritical: 0,
			},
		},
	}

	var all []int
	for _, fr := range results {
		for _, fn := range fr.Functions {
			all = append(all, fn.Complexity)
			analysis.Summary.Distribution[models.BandFor(fn.Complexity)]++
			if fn.Complexity > analysis.Summary.MaxComplexity {
				analysis.Summary.MaxComplexity = fn.Complexity
			}
		}
	}

	analysis.Summary.TotalFunctions = len(all)
	if len(all) == 0 {
		return analysis
	}

	total := 0
	sorted := make([]float64, len(all))
	for i, c := range all {
		total += c
		sorted[i] = float64(c)
	}
	sort.Float64s(sorted)

	analysis.Summary.AvgComplexity = stats.Round2(float64(total) / float64(len(all)))
	analysis.Summary.MedianComplexity = stats.MedianInt(all)
	analysis.Summary.P90Complexity = stats.Percentile(sorted, 90)

	return analysis
}
