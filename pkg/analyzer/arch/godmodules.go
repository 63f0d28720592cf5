package arch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
)

// detectGodModules scores each module against an additive risk model: excess
// functions, classes, lines, and dependents each add risk.
func (a *Analyzer) detectGodModules(files []*models.FileFacts, g *models.DependencyGraph) []models.GodModule {
	found := make([]models.GodModule, 0)

	for _, f := range files {
		if f.Failed() {
			continue
		}

		fanIn := 0
		if m, ok := g.FanMetrics[f.Path]; ok {
			fanIn = m.FanIn
		}

		reasons := make([]string, 0, 4)
		risk := 0

		if f.FunctionCount >= 10 {
			reasons = append(reasons, fmt.Sprintf("%d functions", f.FunctionCount))
			risk += f.FunctionCount - 9
		}
		if f.ClassCount >= 3 {
			reasons = append(reasons, fmt.Sprintf("%d classes", f.ClassCount))
			risk += (f.ClassCount - 2) * 3
		}
		if f.TotalLines >= 300 {
			reasons = append(reasons, fmt.Sprintf("%d lines", f.TotalLines))
			risk += (f.TotalLines - 299) / 50
		}
		if fanIn >= 5 {
			reasons = append(reasons, fmt.Sprintf("%d dependents", fanIn))
			risk += fanIn - 4
		}

		if risk < a.thresholds.GodModuleMinRisk {
			continue
		}

		severity := models.SeverityMedium
		switch {
		case risk >= 15:
			severity = models.SeverityCritical
		case risk >= 10:
			severity = models.SeverityHigh
		}

		found = append(found, models.GodModule{
			File:          f.Path,
			Severity:      severity,
			RiskScore:     risk,
			FunctionCount: f.FunctionCount,
			ClassCount:    f.ClassCount,
			TotalLines:    f.TotalLines,
			Reasons:       reasons,
			Reasoning: fmt.Sprintf(
				"**%s** shows god module characteristics: %s. "+
					"Large modules with many responsibilities become maintenance bottlenecks "+
					"and resist safe modification.",
				f.Path, strings.Join(reasons, ", ")),
			Recommendation: fmt.Sprintf(
				"Decompose %s by identifying 2-3 cohesive groups of functions/classes "+
					"and extracting each into its own module. Prioritize the highest-complexity "+
					"functions for extraction first.",
				moduleStem(f.Path)),
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].RiskScore > found[j].RiskScore
	})
	return found
}
