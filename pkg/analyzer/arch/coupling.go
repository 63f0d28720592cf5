package arch

import (
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/stats"
)

// computeCoupling summarizes project-wide coupling. Density counts every
// analyzed file, including failed ones, against the possible edge count.
func computeCoupling(g *models.DependencyGraph, files []*models.FileFacts) *models.CouplingAnalysis {
	totalFiles := len(files)
	if totalFiles == 0 {
		return &models.CouplingAnalysis{
			Assessment:        "No files to analyze",
			InstabilityByFile: map[string]float64{},
		}
	}

	totalEdges := 0
	for _, targets := range g.Edges {
		totalEdges += len(targets)
	}

	density := 0.0
	if maxEdges := totalFiles * (totalFiles - 1); maxEdges > 0 {
		density = float64(totalEdges) / float64(maxEdges)
	}

	sumFanIn, sumFanOut, maxFanIn := 0, 0, 0
	instability := make(map[string]float64, len(g.FanMetrics))
	for path, m := range g.FanMetrics {
		sumFanIn += m.FanIn
		sumFanOut += m.FanOut
		if m.FanIn > maxFanIn {
			maxFanIn = m.FanIn
		}
		instability[path] = stats.Round2(m.CalculateInstability())
	}

	avgFanIn, avgFanOut := 0.0, 0.0
	if n := len(g.FanMetrics); n > 0 {
		avgFanIn = float64(sumFanIn) / float64(n)
		avgFanOut = float64(sumFanOut) / float64(n)
	}

	return &models.CouplingAnalysis{
		CouplingDensity:   stats.Round3(density),
		AvgFanIn:          stats.Round2(avgFanIn),
		AvgFanOut:         stats.Round2(avgFanOut),
		MaxFanIn:          maxFanIn,
		TotalDependencies: totalEdges,
		Assessment:        couplingAssessment(density),
		InstabilityByFile: instability,
	}
}

// couplingAssessment buckets density into a one-line verdict. A density of
// exactly 0.3 reads as moderate.
func couplingAssessment(density float64) string {
	switch {
	case density > 0.5:
		return "Highly coupled — modules are tightly interconnected"
	case density >= 0.3:
		return "Moderately coupled — consider reducing dependencies"
	case density > 0.1:
		return "Loosely coupled — good separation"
	default:
		return "Very loosely coupled — modules are independent"
	}
}
