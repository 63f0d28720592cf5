package graph

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/halcyonic/strata/pkg/models"
)

func pyFile(path string, imports ...models.ImportFact) *models.FileFacts {
	return &models.FileFacts{Path: path, Imports: imports}
}

func plainImport(names ...string) models.ImportFact {
	return models.ImportFact{Kind: models.ImportDirect, Names: names}
}

func fromImport(module string, names ...string) models.ImportFact {
	return models.ImportFact{Kind: models.ImportFrom, Module: module, Names: names}
}

func TestBuildResolvesLocalImports(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("main.py", fromImport("util", "run")),
		pyFile("util.py"),
	})

	deps := g.Edges["main.py"]
	if len(deps) != 1 || deps[0] != "util.py" {
		t.Errorf("Edges[main.py] = %v, want [util.py]", deps)
	}
	if rev := g.ReverseEdges["util.py"]; len(rev) != 1 || rev[0] != "main.py" {
		t.Errorf("ReverseEdges[util.py] = %v, want [main.py]", rev)
	}
}

func TestBuildShortAliasResolution(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("app/main.py", fromImport("helpers", "format_row")),
		pyFile("app/lib/helpers.py"),
	})

	deps := g.Edges["app/main.py"]
	if len(deps) != 1 || deps[0] != "app/lib/helpers.py" {
		t.Errorf("Edges = %v, want short-alias resolution to app/lib/helpers.py", deps)
	}
}

func TestBuildIgnoresExternalImports(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("main.py", plainImport("os"), fromImport("pathlib", "Path")),
	})

	if len(g.Edges) != 0 {
		t.Errorf("Edges = %v, want none for external imports", g.Edges)
	}
	if g.FanMetrics["main.py"].FanOut != 0 {
		t.Errorf("FanOut = %d, want 0", g.FanMetrics["main.py"].FanOut)
	}
}

func TestBuildDiscardsSelfEdges(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("util.py", plainImport("util")),
	})

	if len(g.Edges["util.py"]) != 0 {
		t.Errorf("Edges = %v, want no self-edge", g.Edges["util.py"])
	}
}

func TestBuildSkipsErrorRecords(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("main.py", plainImport("broken")),
		{Path: "broken.py", Error: "SyntaxError: invalid syntax (line 1)"},
	})

	if len(g.Edges) != 0 {
		t.Errorf("Edges = %v, failed files should not resolve", g.Edges)
	}
	if _, ok := g.FanMetrics["broken.py"]; ok {
		t.Error("failed files should carry no fan metrics")
	}
}

func TestBuildFanMetrics(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("hub")),
		pyFile("b.py", plainImport("hub")),
		pyFile("hub.py"),
	})

	hub := g.FanMetrics["hub.py"]
	if hub.FanIn != 2 || hub.FanOut != 0 {
		t.Errorf("hub fan = in %d out %d, want 2/0", hub.FanIn, hub.FanOut)
	}
	if len(hub.DependedBy) != 2 || hub.DependedBy[0] != "a.py" || hub.DependedBy[1] != "b.py" {
		t.Errorf("DependedBy = %v", hub.DependedBy)
	}
	if hub.Instability != 0 {
		t.Errorf("hub instability = %v, want 0", hub.Instability)
	}
	if a := g.FanMetrics["a.py"]; a.Instability != 1 {
		t.Errorf("a instability = %v, want 1", a.Instability)
	}

	if g.ModuleCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("counts = %d modules %d edges", g.ModuleCount(), g.EdgeCount())
	}
}

func TestBuildEdgeSymmetry(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("hub"), plainImport("b")),
		pyFile("b.py", plainImport("hub")),
		pyFile("hub.py", plainImport("a")),
	})

	for from, targets := range g.Edges {
		for _, to := range targets {
			if !contains(g.ReverseEdges[to], from) {
				t.Errorf("edge %s -> %s missing from ReverseEdges[%s]", from, to, to)
			}
		}
	}
	for to, sources := range g.ReverseEdges {
		for _, from := range sources {
			if !contains(g.Edges[from], to) {
				t.Errorf("reverse edge %s <- %s missing from Edges[%s]", to, from, from)
			}
		}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("b")),
		pyFile("b.py", plainImport("c")),
		pyFile("c.py", plainImport("a")),
	})

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got models.DependencyGraph
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(got.Edges, g.Edges) {
		t.Errorf("edges changed across round trip: %v vs %v", got.Edges, g.Edges)
	}
	if !reflect.DeepEqual(got.ReverseEdges, g.ReverseEdges) {
		t.Errorf("reverse edges changed across round trip")
	}
	if !reflect.DeepEqual(got.FanMetrics, g.FanMetrics) {
		t.Errorf("fan metrics changed across round trip")
	}
}

func TestBuildCentrality(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("hub")),
		pyFile("b.py", plainImport("hub")),
		pyFile("hub.py"),
	})

	if len(g.Centrality) != 3 {
		t.Fatalf("Centrality = %v", g.Centrality)
	}
	if g.Centrality["hub.py"] <= g.Centrality["a.py"] {
		t.Errorf("hub centrality %v should exceed leaf %v", g.Centrality["hub.py"], g.Centrality["a.py"])
	}
}

func TestCyclesFoundOnce(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("b")),
		pyFile("b.py", plainImport("c")),
		pyFile("c.py", plainImport("a")),
	})

	cycles := Cycles(g)
	if len(cycles) != 1 {
		t.Fatalf("Cycles = %v, want exactly one", cycles)
	}

	cycle := cycles[0]
	if len(cycle) != 4 || cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle = %v, want closed chain of 3 distinct members", cycle)
	}
}

func TestCyclesDedupeRotations(t *testing.T) {
	// Every ring member sits in the cyclic set, so the DFS enters the ring
	// from each of them. All rotations must collapse to one report.
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("b")),
		pyFile("b.py", plainImport("c")),
		pyFile("c.py", plainImport("d")),
		pyFile("d.py", plainImport("a")),
	})

	cycles := Cycles(g)
	if len(cycles) != 1 {
		t.Fatalf("Cycles = %v, want one ring regardless of entry node", cycles)
	}

	members := map[string]bool{}
	for _, m := range cycles[0][:len(cycles[0])-1] {
		members[m] = true
	}
	if len(members) != 4 {
		t.Errorf("cycle members = %v, want the 4 distinct ring files", cycles[0])
	}
}

func TestCyclesNoneInDAG(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("a.py", plainImport("b")),
		pyFile("b.py", plainImport("c")),
		pyFile("c.py"),
	})

	if cycles := Cycles(g); len(cycles) != 0 {
		t.Errorf("Cycles = %v, want none", cycles)
	}
}

func TestCyclesTwoNodeRing(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("x.py", plainImport("y")),
		pyFile("y.py", plainImport("x")),
	})

	cycles := Cycles(g)
	if len(cycles) != 1 || len(cycles[0]) != 3 {
		t.Errorf("Cycles = %v, want one two-member ring", cycles)
	}
}

func TestToMermaid(t *testing.T) {
	g := Build([]*models.FileFacts{
		pyFile("main.py", plainImport("util")),
		pyFile("util.py"),
	})

	mermaid := g.ToMermaid()
	if mermaid == "" {
		t.Fatal("empty mermaid output")
	}
	for _, want := range []string{"graph TD", "main_py", "util_py", "-->"} {
		if !strings.Contains(mermaid, want) {
			t.Errorf("mermaid missing %q:\n%s", want, mermaid)
		}
	}
}
