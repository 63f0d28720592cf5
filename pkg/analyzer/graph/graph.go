// Package graph builds the internal dependency graph of a project from
// extracted file facts.
package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/halcyonic/strata/pkg/analyzer"
	"github.com/halcyonic/strata/pkg/analyzer/facts"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/source"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*models.DependencyGraph] = (*Analyzer)(nil)

// Analyzer extracts facts and assembles the dependency graph in one pass.
type Analyzer struct {
	facts *facts.Analyzer
}

// Option is a functional option for configuring Analyzer.
type Option func(*options)

type options struct {
	maxFileSize int64
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(o *options) {
		o.maxFileSize = maxSize
	}
}

// New creates a new graph analyzer.
func New(opts ...Option) *Analyzer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyzer{
		facts: facts.New(facts.WithMaxFileSize(o.maxFileSize)),
	}
}

// Analyze builds the dependency graph for the given files.
// Progress is tracked via context using analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*models.DependencyGraph, error) {
	ff, err := a.facts.Analyze(ctx, files)
	if err != nil {
		return nil, err
	}
	return Build(ff), nil
}

// AnalyzeFrom builds the dependency graph reading content from an arbitrary
// source, such as a git tree.
func (a *Analyzer) AnalyzeFrom(ctx context.Context, files []string, src source.ContentSource) (*models.DependencyGraph, error) {
	ff, err := a.facts.AnalyzeFrom(ctx, files, src)
	if err != nil {
		return nil, err
	}
	return Build(ff), nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.facts.Close()
}

// Build resolves each file's imports against the project's own modules and
// assembles the edge maps and fan metrics. Error records register no module
// and produce no edges. Imports that resolve to nothing local are external
// and contribute no edge; self-edges are discarded.
func Build(files []*models.FileFacts) *models.DependencyGraph {
	g := models.NewDependencyGraph()

	// Module identifiers and their short aliases. When two files share a
	// short name the later one in path order wins the alias.
	moduleToFile := make(map[string]string)
	for _, f := range files {
		if f.Failed() {
			continue
		}
		module := f.ModuleName()
		moduleToFile[module] = f.Path
		moduleToFile[shortName(module)] = f.Path
	}

	for _, f := range files {
		if f.Failed() {
			continue
		}
		for _, imp := range f.Imports {
			for _, candidate := range resolutionCandidates(imp) {
				target, ok := moduleToFile[candidate]
				if !ok || target == f.Path {
					continue
				}
				g.Edges[f.Path] = append(g.Edges[f.Path], target)
				g.ReverseEdges[target] = append(g.ReverseEdges[target], f.Path)
			}
		}
	}

	for path := range g.Edges {
		g.Edges[path] = sortedSet(g.Edges[path])
	}
	for path := range g.ReverseEdges {
		g.ReverseEdges[path] = sortedSet(g.ReverseEdges[path])
	}

	for _, f := range files {
		if f.Failed() {
			continue
		}
		m := &models.FanMetrics{
			FanOut:     len(g.Edges[f.Path]),
			FanIn:      len(g.ReverseEdges[f.Path]),
			DependsOn:  emptyNotNil(g.Edges[f.Path]),
			DependedBy: emptyNotNil(g.ReverseEdges[f.Path]),
		}
		m.Instability = m.CalculateInstability()
		g.FanMetrics[f.Path] = m
	}

	g.Centrality = pageRank(g)
	return g
}

// resolutionCandidates returns the identifiers an import may bind to, in
// resolution order: the full module, its last segment, then each imported
// name.
func resolutionCandidates(imp models.ImportFact) []string {
	candidates := make([]string, 0, len(imp.Names)+2)
	if imp.Module != "" {
		candidates = append(candidates, imp.Module, shortName(imp.Module))
	}
	candidates = append(candidates, imp.Names...)
	return candidates
}

// pageRank computes PageRank centrality over the module graph.
func pageRank(g *models.DependencyGraph) map[string]float64 {
	modules := g.Modules()
	if len(modules) == 0 {
		return nil
	}

	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(modules))
	for i, m := range modules {
		ids[m] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}

	for src, targets := range g.Edges {
		from, ok := ids[src]
		if !ok {
			continue
		}
		for _, dst := range targets {
			if to, ok := ids[dst]; ok && from != to {
				dg.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			}
		}
	}

	ranks := network.PageRank(dg, 0.85, 1e-6)
	centrality := make(map[string]float64, len(modules))
	for m, id := range ids {
		centrality[m] = ranks[id]
	}
	return centrality
}

func shortName(module string) string {
	if i := strings.LastIndex(module, "."); i >= 0 {
		return module[i+1:]
	}
	return module
}

func sortedSet(items []string) []string {
	sort.Strings(items)
	out := items[:0]
	for i, item := range items {
		if i == 0 || item != items[i-1] {
			out = append(out, item)
		}
	}
	return out
}

func emptyNotNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
