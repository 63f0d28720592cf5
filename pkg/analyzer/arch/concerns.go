package arch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
)

// maxEvidencePerConcern caps the evidence items reported per category.
const maxEvidencePerConcern = 3

// detectConcernMixing flags modules that touch several distinct
// responsibility areas. Test files are skipped: mixing is expected there.
func (a *Analyzer) detectConcernMixing(files []*models.FileFacts) []models.ConcernFinding {
	findings := make([]models.ConcernFinding, 0)

	categories := make([]string, 0, len(a.taxonomy))
	for key := range a.taxonomy {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	for _, f := range files {
		if f.Failed() || strings.Contains(strings.ToLower(f.Path), "test") {
			continue
		}

		evidence := make(map[string][]string)

		for _, imp := range f.Imports {
			names := strings.Join(imp.Names, " ")
			for _, key := range categories {
				for _, pkg := range a.taxonomy[key].Imports {
					if strings.Contains(imp.Module, pkg) || strings.Contains(names, pkg) {
						subject := imp.Module
						if subject == "" {
							subject = strings.Join(imp.Names, ", ")
						}
						evidence[key] = append(evidence[key], "imports "+subject)
					}
				}
			}
		}

		for _, fn := range f.Functions {
			name := strings.ToLower(fn.Name)
			for _, key := range categories {
				for _, kw := range a.taxonomy[key].Keywords {
					if strings.Contains(name, kw) {
						evidence[key] = append(evidence[key], "function "+fn.Name)
						break
					}
				}
			}
		}

		if len(evidence) < a.thresholds.MinMixedConcerns {
			continue
		}

		labels := make([]string, 0, len(evidence))
		labeled := make(map[string][]string, len(evidence))
		for key, items := range evidence {
			label := a.taxonomy[key].Label
			labels = append(labels, label)
			if len(items) > maxEvidencePerConcern {
				items = items[:maxEvidencePerConcern]
			}
			labeled[label] = items
		}
		sort.Strings(labels)

		severity := models.SeverityMedium
		if len(evidence) >= 4 {
			severity = models.SeverityHigh
		}

		suggested := make([]string, 0, 3)
		for _, label := range labels[:min(3, len(labels))] {
			suggested = append(suggested, strings.ToLower(label)+".py")
		}

		findings = append(findings, models.ConcernFinding{
			File:         f.Path,
			Severity:     severity,
			Concerns:     labels,
			ConcernCount: len(evidence),
			Evidence:     labeled,
			Reasoning: fmt.Sprintf(
				"**%s** mixes %d distinct concerns: %s. "+
					"This violates the Single Responsibility Principle and makes the module "+
					"harder to test, maintain, and reason about independently.",
				f.Path, len(evidence), strings.Join(labels, ", ")),
			Recommendation: fmt.Sprintf(
				"Separate %s into concern-specific modules: %s.",
				moduleStem(f.Path), strings.Join(suggested, ", ")),
		})
	}

	return findings
}
