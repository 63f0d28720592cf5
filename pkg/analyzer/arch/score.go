package arch

import (
	"fmt"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
)

// Penalty caps per category.
const (
	maxBottleneckPenalty = 30
	maxConcernPenalty    = 25
	maxCyclePenalty      = 25
	maxGodPenalty        = 20
)

type scoreResult struct {
	score     int
	breakdown *models.ScoreBreakdown
}

// computeScore reduces a perfect 100 by capped per-category penalties.
func computeScore(r *models.ArchReport) scoreResult {
	score := 100
	breakdown := &models.ScoreBreakdown{}

	bottleneckPenalty := 0
	for _, b := range r.Bottlenecks {
		bottleneckPenalty += b.Severity.Penalty()
	}
	bottleneckPenalty = min(bottleneckPenalty, maxBottleneckPenalty)
	score -= bottleneckPenalty
	breakdown.Bottlenecks = models.CategoryPenalty{Penalty: bottleneckPenalty, Count: len(r.Bottlenecks)}

	concernPenalty := min(len(r.ConcernFindings)*8, maxConcernPenalty)
	score -= concernPenalty
	breakdown.ConcernSeparation = models.CategoryPenalty{Penalty: concernPenalty, Count: len(r.ConcernFindings)}

	cyclePenalty := min(len(r.Cycles)*12, maxCyclePenalty)
	score -= cyclePenalty
	breakdown.CircularDependencies = models.CategoryPenalty{Penalty: cyclePenalty, Count: len(r.Cycles)}

	godPenalty := 0
	for _, g := range r.GodModules {
		godPenalty += min(g.RiskScore, 15)
	}
	godPenalty = min(godPenalty, maxGodPenalty)
	score -= godPenalty
	breakdown.GodModules = models.CategoryPenalty{Penalty: godPenalty, Count: len(r.GodModules)}

	density := 0.0
	if r.Coupling != nil {
		density = r.Coupling.CouplingDensity
	}
	couplingPenalty := 0
	switch {
	case density > 0.5:
		couplingPenalty = 15
	case density > 0.3:
		couplingPenalty = 8
	case density > 0.2:
		couplingPenalty = 3
	}
	score -= couplingPenalty
	breakdown.Coupling = models.CouplingPenalty{Penalty: couplingPenalty, Density: density}

	return scoreResult{score: max(score, 0), breakdown: breakdown}
}

// buildRecommendations interleaves the detectors' findings into a single
// prioritized action list: serious bottlenecks first, then cycles, god
// modules, and mixed concerns.
func buildRecommendations(r *models.ArchReport) []models.Recommendation {
	recs := make([]models.Recommendation, 0)
	priority := 1

	serious := 0
	for _, b := range r.Bottlenecks {
		if b.Severity != models.SeverityCritical && b.Severity != models.SeverityHigh {
			continue
		}
		if serious == 3 {
			break
		}
		serious++
		effort := "MEDIUM"
		if b.FunctionCount >= 10 {
			effort = "HIGH"
		}
		recs = append(recs, models.Recommendation{
			Priority: priority,
			Category: "Bottleneck Resolution",
			Target:   b.File,
			Action:   b.Recommendation,
			Impact:   fmt.Sprintf("Reduces risk for %d dependent modules", b.FanIn),
			Effort:   effort,
		})
		priority++
	}

	for _, c := range r.Cycles {
		recs = append(recs, models.Recommendation{
			Priority: priority,
			Category: "Circular Dependency",
			Target:   strings.Join(c.Files, " → "),
			Action:   c.Recommendation,
			Impact:   "Removes tight coupling between modules",
			Effort:   "MEDIUM",
		})
		priority++
	}

	for _, g := range r.GodModules[:min(2, len(r.GodModules))] {
		recs = append(recs, models.Recommendation{
			Priority: priority,
			Category: "Module Decomposition",
			Target:   g.File,
			Action:   g.Recommendation,
			Impact:   fmt.Sprintf("Reduces module from %d lines to manageable units", g.TotalLines),
			Effort:   "HIGH",
		})
		priority++
	}

	for _, c := range r.ConcernFindings[:min(2, len(r.ConcernFindings))] {
		recs = append(recs, models.Recommendation{
			Priority: priority,
			Category: "Concern Separation",
			Target:   c.File,
			Action:   c.Recommendation,
			Impact:   fmt.Sprintf("Separates %d mixed concerns for better testability", c.ConcernCount),
			Effort:   "MEDIUM",
		})
		priority++
	}

	return recs
}

// buildSummary renders the markdown narrative at the top of a report.
func buildSummary(r *models.ArchReport) string {
	parts := make([]string, 0, 8)

	pattern := "Unknown"
	confidence := 0.0
	if r.Pattern != nil {
		pattern = r.Pattern.DetectedPattern
		confidence = r.Pattern.Confidence
	}
	parts = append(parts, "## Architecture Assessment\n")
	parts = append(parts, fmt.Sprintf("**Detected Pattern:** %s (confidence: %.0f%%)", pattern, confidence*100))
	parts = append(parts, fmt.Sprintf("**Architecture Score:** %d/100 (Grade: %s)\n", r.Score, r.Grade))

	switch {
	case r.Score >= 90:
		parts = append(parts, "The codebase has strong architectural health. Maintain current patterns.")
	case r.Score >= 75:
		parts = append(parts, "Architecture is generally sound with room for targeted improvements.")
	case r.Score >= 60:
		parts = append(parts, "Several architectural concerns need attention to prevent technical debt accumulation.")
	default:
		parts = append(parts, "**Warning:** Significant architectural issues detected. Prioritize refactoring.")
	}

	if len(r.Bottlenecks) > 0 {
		parts = append(parts, fmt.Sprintf("\n**Bottlenecks:** %d module(s) identified as structural bottlenecks.", len(r.Bottlenecks)))
		for _, b := range r.Bottlenecks[:min(2, len(r.Bottlenecks))] {
			parts = append(parts, fmt.Sprintf("  - %s: %s", b.File, strings.Join(b.Reasons, ", ")))
		}
	}

	if len(r.GodModules) > 0 {
		parts = append(parts, fmt.Sprintf("\n**God Modules:** %d module(s) have too many responsibilities.", len(r.GodModules)))
	}

	if len(r.ConcernFindings) > 0 {
		parts = append(parts, fmt.Sprintf("\n**Mixed Concerns:** %d module(s) mix multiple responsibility areas.", len(r.ConcernFindings)))
	}

	if len(r.Recommendations) > 0 {
		first := r.Recommendations[0]
		parts = append(parts, fmt.Sprintf("\n**Top Priority:** %s — %s", first.Category, first.Action))
	}

	return strings.Join(parts, "\n")
}
