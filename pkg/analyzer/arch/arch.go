// Package arch reasons over extracted file facts and the dependency graph,
// producing an architectural assessment: bottlenecks, mixed concerns, import
// cycles, god modules, coupling, a detected layout pattern, and an overall
// health score with prioritized recommendations.
package arch

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/halcyonic/strata/pkg/models"
)

// Analyzer holds the tunable reasoning policy.
type Analyzer struct {
	thresholds models.ArchThresholds
	taxonomy   Taxonomy
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithThresholds overrides the detection thresholds.
func WithThresholds(t models.ArchThresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// WithTaxonomy overrides the concern-category table.
func WithTaxonomy(t Taxonomy) Option {
	return func(a *Analyzer) {
		a.taxonomy = t
	}
}

// New creates a new architecture analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		thresholds: models.DefaultArchThresholds(),
		taxonomy:   DefaultTaxonomy(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every reasoning engine over the facts and graph. It is a pure
// function of its inputs. allFiles is the full project inventory used for
// pattern detection; pass nil to fall back to the fact paths.
func (a *Analyzer) Analyze(files []*models.FileFacts, g *models.DependencyGraph, allFiles []models.ProjectFile) *models.ArchReport {
	report := models.NewArchReport()

	report.Bottlenecks = a.detectBottlenecks(files, g)
	report.ConcernFindings = a.detectConcernMixing(files)
	report.Cycles = buildCycleFindings(g)
	report.GodModules = a.detectGodModules(files, g)
	report.Coupling = computeCoupling(g, files)
	report.Pattern = detectPattern(patternNames(files, allFiles))
	report.Recommendations = buildRecommendations(report)

	score := computeScore(report)
	report.Score = score.score
	report.Grade = models.GradeForScore(score.score)
	report.Breakdown = score.breakdown
	report.Summary = buildSummary(report)

	return report
}

// patternNames collects the lowercase file stems and directory names the
// pattern detector matches indicators against.
func patternNames(files []*models.FileFacts, allFiles []models.ProjectFile) map[string]bool {
	paths := make([]string, 0, len(allFiles))
	if allFiles != nil {
		for _, f := range allFiles {
			paths = append(paths, f.Path)
		}
	} else {
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}

	names := make(map[string]bool)
	for _, path := range paths {
		base := filepath.Base(path)
		names[strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))] = true
		dir := filepath.Dir(path)
		for dir != "." && dir != "/" && dir != "" {
			names[strings.ToLower(filepath.Base(dir))] = true
			dir = filepath.Dir(dir)
		}
	}
	return names
}

// moduleStem returns the file name without directory or extension, used when
// recommendations name a module.
func moduleStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// formatFloat renders a float without trailing zeros ("8.5", "8").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
