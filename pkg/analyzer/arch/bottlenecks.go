package arch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
)

// detectBottlenecks flags modules where high fan-in meets non-trivial
// complexity. Severity escalation follows a fixed ladder: fan-in alone sets
// CRITICAL or HIGH, complexity raises an already-flagged module to CRITICAL,
// and surface-area signals flag without raising.
func (a *Analyzer) detectBottlenecks(files []*models.FileFacts, g *models.DependencyGraph) []models.Bottleneck {
	t := a.thresholds
	bottlenecks := make([]models.Bottleneck, 0)

	for _, f := range files {
		if f.Failed() {
			continue
		}

		var fanIn int
		dependedBy := []string{}
		if m, ok := g.FanMetrics[f.Path]; ok {
			fanIn = m.FanIn
			dependedBy = m.DependedBy
		}

		flagged := false
		severity := models.SeverityLow
		var reasons []string

		switch {
		case fanIn >= t.FanInCritical:
			flagged = true
			severity = models.SeverityCritical
			reasons = append(reasons, fmt.Sprintf("%d files depend on this module", fanIn))
		case fanIn >= t.FanInWarning:
			flagged = true
			severity = models.SeverityHigh
			reasons = append(reasons, fmt.Sprintf("%d files depend on this module", fanIn))
		}

		if f.AvgComplexity >= t.AvgComplexityHigh {
			if flagged {
				severity = models.SeverityCritical
			} else {
				flagged = true
				severity = models.SeverityHigh
			}
			reasons = append(reasons, fmt.Sprintf("Contains high-complexity logic (avg: %s)", formatFloat(f.AvgComplexity)))
		}

		if f.FunctionCount >= t.LargeFunctionCount {
			reasons = append(reasons, fmt.Sprintf("Has %d functions (large surface area)", f.FunctionCount))
			if !flagged && fanIn >= 3 {
				flagged = true
			}
		}

		if f.MaxComplexity >= t.MaxComplexityCritical {
			reasons = append(reasons, fmt.Sprintf("Contains a function with complexity %d", f.MaxComplexity))
			flagged = true
		}

		if !flagged {
			continue
		}

		bottlenecks = append(bottlenecks, models.Bottleneck{
			File:           f.Path,
			Severity:       severity,
			FanIn:          fanIn,
			AvgComplexity:  f.AvgComplexity,
			MaxComplexity:  f.MaxComplexity,
			FunctionCount:  f.FunctionCount,
			DependedBy:     dependedBy,
			Reasons:        reasons,
			Reasoning:      bottleneckReasoning(f.Path, fanIn, f.AvgComplexity, reasons),
			Recommendation: bottleneckRecommendation(f.Path, fanIn, f.AvgComplexity, f.FunctionCount),
		})
	}

	sort.SliceStable(bottlenecks, func(i, j int) bool {
		return bottlenecks[i].Severity.Weight() > bottlenecks[j].Severity.Weight()
	})
	return bottlenecks
}

// bottleneckReasoning builds the natural-language reasoning chain.
func bottleneckReasoning(path string, fanIn int, avgCx float64, reasons []string) string {
	parts := []string{fmt.Sprintf("**%s** is becoming a structural bottleneck because:", path)}
	for i, reason := range reasons {
		parts = append(parts, fmt.Sprintf("  %d. %s", i+1, reason))
	}

	if fanIn >= 3 && avgCx >= 5 {
		parts = append(parts, "", fmt.Sprintf(
			"This creates compounding risk: any change to %s affects %d dependent files, "+
				"and the internal complexity (avg %s) makes safe modification harder.",
			path, fanIn, formatFloat(avgCx)))
	}

	return strings.Join(parts, "\n")
}

func bottleneckRecommendation(path string, fanIn int, avgCx float64, funcCount int) string {
	name := moduleStem(path)

	switch {
	case fanIn >= 5 && avgCx >= 5:
		return fmt.Sprintf(
			"Split %s into a thin interface module (types/contracts) depended on by others, "+
				"and an implementation module with the complex logic. This reduces coupling "+
				"while preserving the current API surface.", name)
	case fanIn >= 5:
		return fmt.Sprintf(
			"Consider extracting a stable interface/protocol layer from %s. "+
				"Other modules should depend on the interface, not the implementation.", name)
	case avgCx >= 8:
		return fmt.Sprintf(
			"Reduce complexity in %s by extracting pure functions for complex logic "+
				"into helper modules. Keep %s as an orchestration layer.", name, name)
	case funcCount >= 10:
		return fmt.Sprintf(
			"Group the %d functions in %s into cohesive sub-modules. "+
				"Each sub-module should handle a single responsibility.", funcCount, name)
	}
	return fmt.Sprintf("Monitor %s for growing complexity. Consider refactoring if it grows further.", name)
}
