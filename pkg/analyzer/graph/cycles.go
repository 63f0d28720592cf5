package graph

import (
	"sort"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cycles enumerates circular dependency chains. Each cycle is returned as a
// path closed by repeating the entry node ([a b c a]); two traversals of the
// same ring report it once. A Tarjan SCC pre-pass restricts the DFS to nodes
// that can possibly sit on a cycle.
func Cycles(g *models.DependencyGraph) [][]string {
	cyclic := cyclicNodes(g)
	if len(cyclic) == 0 {
		return nil
	}

	var cycles [][]string
	seen := make(map[string]bool)

	var path []string
	onPath := make(map[string]bool)

	var dfs func(node string)
	dfs = func(node string) {
		if onPath[node] {
			start := 0
			for i, p := range path {
				if p == node {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), node)
			key := cycleKey(cycle)
			if !seen[key] {
				seen[key] = true
				cycles = append(cycles, cycle)
			}
			return
		}

		path = append(path, node)
		onPath[node] = true

		for _, next := range g.Edges[node] {
			if cyclic[next] {
				dfs(next)
			}
		}

		path = path[:len(path)-1]
		delete(onPath, node)
	}

	roots := make([]string, 0, len(cyclic))
	for node := range cyclic {
		roots = append(roots, node)
	}
	sort.Strings(roots)
	for _, root := range roots {
		dfs(root)
	}

	return cycles
}

// cyclicNodes returns the members of all non-trivial strongly connected
// components.
func cyclicNodes(g *models.DependencyGraph) map[string]bool {
	modules := g.Modules()
	if len(modules) == 0 {
		return nil
	}

	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(modules))
	byID := make(map[int64]string, len(modules))
	for i, m := range modules {
		ids[m] = int64(i)
		byID[int64(i)] = m
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

	cyclic := make(map[string]bool)
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		for _, n := range scc {
			cyclic[byID[n.ID()]] = true
		}
	}
	return cyclic
}

// cycleKey identifies a cycle independent of entry point. The closing repeat
// is dropped so every rotation of the same ring produces the same key.
func cycleKey(cycle []string) string {
	members := append([]string{}, cycle[:len(cycle)-1]...)
	sort.Strings(members)
	return strings.Join(members, "\x00")
}
