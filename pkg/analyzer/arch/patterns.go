package arch

import (
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/stats"
)

// detectPattern matches file stems and directory names against the known
// layouts and reports the best one above the confidence floor.
func detectPattern(names map[string]bool) *models.PatternMatch {
	var best *archPattern
	bestScore := 0.0

	for i := range architecturePatterns {
		p := &architecturePatterns[i]
		matches := 0
		for _, ind := range p.indicators {
			if names[ind] {
				matches++
			}
		}
		score := float64(matches) / float64(len(p.indicators))
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	if best != nil && bestScore >= minPatternConfidence {
		matched := make([]string, 0, len(best.indicators))
		for _, ind := range best.indicators {
			if names[ind] {
				matched = append(matched, ind)
			}
		}
		return &models.PatternMatch{
			DetectedPattern:   best.label,
			Confidence:        stats.Round2(bestScore),
			MatchedIndicators: matched,
		}
	}

	return &models.PatternMatch{
		DetectedPattern:   "Custom/Unrecognized",
		Confidence:        0,
		MatchedIndicators: []string{},
	}
}
