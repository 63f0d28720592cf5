package models

import "time"

// HotspotFunction is a top-ranked function in the project-wide complexity or
// length tables.
type HotspotFunction struct {
	Name       string `json:"name"`
	File       string `json:"file"`
	Complexity int    `json:"complexity"`
	Line       int    `json:"line"`
	LineCount  int    `json:"line_count"`
}

// ComplexityBand labels one bucket of the project complexity distribution.
const (
	BandLow      = "low (1-5)"
	BandMedium   = "medium (6-10)"
	BandHigh     = "high (11-15)"
	BandCritical = "critical (>15)"
)

// BandFor returns the distribution band label for a complexity value.
func BandFor(complexity int) string {
	switch {
	case complexity <= 5:
		return BandLow
	case complexity <= 10:
		return BandMedium
	case complexity <= 15:
		return BandHigh
	default:
		return BandCritical
	}
}

// ProjectMetrics aggregates per-function facts into project-level numbers.
type ProjectMetrics struct {
	AvgComplexity          float64           `json:"avg_complexity"`
	MaxComplexity          int               `json:"max_complexity"`
	MedianComplexity       int               `json:"median_complexity"`
	AvgFunctionLength      float64           `json:"avg_function_length"`
	MaxFunctionLength      int               `json:"max_function_length"`
	DocstringCoverage      float64           `json:"docstring_coverage"`
	TypeHintCoverage       float64           `json:"type_hint_coverage"`
	ComplexityDistribution map[string]int    `json:"complexity_distribution"`
	HotspotFunctions       []HotspotFunction `json:"hotspot_functions"`
	LongestFunctions       []HotspotFunction `json:"longest_functions"`
	TotalFunctions         int               `json:"total_functions"`
	TotalClasses           int               `json:"total_classes"`
}

// DefaultProjectMetrics returns the zero-valued shape reported for a project
// with no parsed functions.
func DefaultProjectMetrics() *ProjectMetrics {
	return &ProjectMetrics{
		ComplexityDistribution: map[string]int{
			BandLow:      0,
			BandMedium:   0,
			BandHigh:     0,
			BandCritical: 0,
		},
		HotspotFunctions: []HotspotFunction{},
		LongestFunctions: []HotspotFunction{},
	}
}

// LanguageStat counts files and lines per detected language.
type LanguageStat struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
}

// ProjectFile is one discovered source file, in any language. The scanner
// records every recognized source file here even though only Python files
// are parsed.
type ProjectFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Lines    int    `json:"lines"`
}

// TechStack groups detected languages, frameworks, and tooling.
type TechStack struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
}

// NewTechStack creates an empty tech stack with initialized lists.
func NewTechStack() *TechStack {
	return &TechStack{
		Languages:  make([]string, 0),
		Frameworks: make([]string, 0),
		Tools:      make([]string, 0),
	}
}

// ProjectSummary carries the project-shape facts that do not derive from
// parsed source: entry points, tech stack hints, test presence.
type ProjectSummary struct {
	ProjectName      string                  `json:"project_name"`
	RootPath         string                  `json:"root_path"`
	TotalFiles       int                     `json:"total_files"`
	TotalPythonFiles int                     `json:"total_python_files"`
	FailedFiles      int                     `json:"failed_files"`
	TotalLines       int                     `json:"total_lines"`
	TotalCodeLines   int                     `json:"total_code_lines"`
	TotalFunctions   int                     `json:"total_functions"`
	TotalClasses     int                     `json:"total_classes"`
	EntryPoints      []string                `json:"entry_points"`
	LanguageStats    map[string]LanguageStat `json:"language_stats"`
	TechStack        *TechStack              `json:"tech_stack"`
	HasTests         bool                    `json:"has_tests"`
	HasCI            bool                    `json:"has_ci"`
}

// FactsDocument is the complete extraction output for a project: one record
// per parsed file plus the aggregated metrics, the full file inventory, and
// the project summary.
type FactsDocument struct {
	AnalyzedAt time.Time       `json:"analyzed_at"`
	Summary    *ProjectSummary `json:"summary"`
	Metrics    *ProjectMetrics `json:"metrics"`
	AllFiles   []ProjectFile   `json:"all_files"`
	Files      []*FileFacts    `json:"files"`
}

// ParsedFiles returns the file records that extracted successfully.
func (d *FactsDocument) ParsedFiles() []*FileFacts {
	out := make([]*FileFacts, 0, len(d.Files))
	for _, f := range d.Files {
		if !f.Failed() {
			out = append(out, f)
		}
	}
	return out
}
