package arch

import (
	"fmt"
	"strings"

	"github.com/halcyonic/strata/pkg/analyzer/graph"
	"github.com/halcyonic/strata/pkg/models"
)

// buildCycleFindings wraps each import cycle in a finding. Chains touching
// more than three modules rank HIGH.
func buildCycleFindings(g *models.DependencyGraph) []models.CircularDependency {
	findings := make([]models.CircularDependency, 0)

	for _, cycle := range graph.Cycles(g) {
		severity := models.SeverityMedium
		if len(cycle) > 3 {
			severity = models.SeverityHigh
		}
		findings = append(findings, models.CircularDependency{
			Files:    cycle,
			Length:   len(cycle) - 1,
			Severity: severity,
			Reasoning: fmt.Sprintf(
				"Circular dependency chain: %s. "+
					"Circular imports make modules tightly coupled and complicate "+
					"testing, refactoring, and understanding the dependency flow.",
				strings.Join(cycle, " → ")),
			Recommendation: "Break the cycle by extracting shared types/interfaces into a common module, " +
				"or use dependency injection to reverse one of the dependency arrows.",
		})
	}

	return findings
}
