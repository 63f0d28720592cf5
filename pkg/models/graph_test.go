package models

import (
	"strings"
	"testing"
)

func TestNewDependencyGraph(t *testing.T) {
	g := NewDependencyGraph()

	if g == nil {
		t.Fatal("NewDependencyGraph() returned nil")
	}

	if g.Edges == nil {
		t.Error("Edges should be initialized")
	}
	if g.ReverseEdges == nil {
		t.Error("ReverseEdges should be initialized")
	}
	if g.FanMetrics == nil {
		t.Error("FanMetrics should be initialized")
	}
}

func TestFanMetricsCalculateInstability(t *testing.T) {
	tests := []struct {
		name   string
		fanIn  int
		fanOut int
		want   float64
	}{
		{"isolated module", 0, 0, 0.5},
		{"pure provider", 4, 0, 0.0},
		{"pure consumer", 0, 4, 1.0},
		{"balanced", 2, 2, 0.5},
		{"mostly consumed", 3, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &FanMetrics{FanIn: tt.fanIn, FanOut: tt.fanOut}
			if got := m.CalculateInstability(); got != tt.want {
				t.Errorf("CalculateInstability() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDependencyGraphCounts(t *testing.T) {
	g := NewDependencyGraph()
	g.Edges["a.py"] = []string{"b.py", "c.py"}
	g.Edges["b.py"] = []string{"c.py"}
	g.FanMetrics["a.py"] = &FanMetrics{FanOut: 2}
	g.FanMetrics["b.py"] = &FanMetrics{FanIn: 1, FanOut: 1}
	g.FanMetrics["c.py"] = &FanMetrics{FanIn: 2}

	if got := g.ModuleCount(); got != 3 {
		t.Errorf("ModuleCount() = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}

	// 3 edges out of 3*2 possible
	if got := g.Density(); got != 0.5 {
		t.Errorf("Density() = %f, want 0.5", got)
	}
}

func TestDependencyGraphDensityEmpty(t *testing.T) {
	g := NewDependencyGraph()
	if got := g.Density(); got != 0 {
		t.Errorf("Density() on empty graph = %f, want 0", got)
	}

	g.FanMetrics["only.py"] = &FanMetrics{}
	if got := g.Density(); got != 0 {
		t.Errorf("Density() on single-module graph = %f, want 0", got)
	}
}

func TestDependencyGraphToMermaid(t *testing.T) {
	g := NewDependencyGraph()
	g.Edges["app.py"] = []string{"core/db.py"}
	g.FanMetrics["app.py"] = &FanMetrics{FanOut: 1}
	g.FanMetrics["core/db.py"] = &FanMetrics{FanIn: 1}

	mermaid := g.ToMermaid()

	if !strings.HasPrefix(mermaid, "graph TD") {
		t.Error("Mermaid output should start with graph TD")
	}
	if !strings.Contains(mermaid, "app_py --> core_db_py") {
		t.Errorf("Mermaid output missing sanitized edge:\n%s", mermaid)
	}
	if !strings.Contains(mermaid, `app_py["app.py"]`) {
		t.Errorf("Mermaid output missing node label:\n%s", mermaid)
	}
}
