package models

import (
	"sort"
	"strings"
)

// FanMetrics holds the fan-in/fan-out profile of one module.
type FanMetrics struct {
	FanOut      int      `json:"fan_out"`
	FanIn       int      `json:"fan_in"`
	DependsOn   []string `json:"depends_on"`
	DependedBy  []string `json:"depended_by"`
	Instability float64  `json:"instability"`
}

// CalculateInstability computes fan_out / (fan_in + fan_out). A module with
// no edges in either direction sits at 0.5.
func (m *FanMetrics) CalculateInstability() float64 {
	total := m.FanIn + m.FanOut
	if total == 0 {
		return 0.5
	}
	return float64(m.FanOut) / float64(total)
}

// DependencyGraph maps internal imports between project files. Keys are file
// paths; adjacency lists are sorted and deduplicated.
type DependencyGraph struct {
	Edges        map[string][]string    `json:"edges"`
	ReverseEdges map[string][]string    `json:"reverse_edges"`
	FanMetrics   map[string]*FanMetrics `json:"fan_metrics"`
	// Centrality carries PageRank scores when the builder computed them.
	Centrality map[string]float64 `json:"centrality,omitempty"`
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
		FanMetrics:   make(map[string]*FanMetrics),
	}
}

// ModuleCount returns the number of files tracked in the graph.
func (g *DependencyGraph) ModuleCount() int {
	return len(g.FanMetrics)
}

// EdgeCount returns the total number of dependency edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, targets := range g.Edges {
		n += len(targets)
	}
	return n
}

// Density returns edges / (n * (n-1)), the fraction of possible directed
// edges present. Zero for graphs with fewer than two modules.
func (g *DependencyGraph) Density() float64 {
	n := g.ModuleCount()
	if n < 2 {
		return 0
	}
	return float64(g.EdgeCount()) / float64(n*(n-1))
}

// Modules returns the tracked file paths in sorted order.
func (g *DependencyGraph) Modules() []string {
	paths := make([]string, 0, len(g.FanMetrics))
	for p := range g.FanMetrics {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ToMermaid generates Mermaid diagram syntax from the graph.
func (g *DependencyGraph) ToMermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, path := range g.Modules() {
		b.WriteString("    " + sanitizeMermaidID(path) + "[\"" + path + "\"]\n")
	}

	sources := make([]string, 0, len(g.Edges))
	for src := range g.Edges {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		for _, dst := range g.Edges[src] {
			b.WriteString("    " + sanitizeMermaidID(src) + " --> " + sanitizeMermaidID(dst) + "\n")
		}
	}

	return b.String()
}

// sanitizeMermaidID makes an ID safe for Mermaid.
func sanitizeMermaidID(id string) string {
	var b strings.Builder
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
