package models

// Severity ranks a finding.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Weight returns a numeric rank for sorting, higher is more severe.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Penalty returns the health-score cost of one bottleneck at this severity.
func (s Severity) Penalty() int {
	switch s {
	case SeverityCritical:
		return 15
	case SeverityHigh:
		return 10
	case SeverityMedium:
		return 5
	case SeverityLow:
		return 2
	}
	return 0
}

// Bottleneck flags a module whose fan-in and complexity concentrate risk.
type Bottleneck struct {
	File           string   `json:"file"`
	Severity       Severity `json:"severity"`
	FanIn          int      `json:"fan_in"`
	AvgComplexity  float64  `json:"avg_complexity"`
	MaxComplexity  int      `json:"max_complexity"`
	FunctionCount  int      `json:"function_count"`
	DependedBy     []string `json:"depended_by"`
	Reasons        []string `json:"reasons"`
	Reasoning      string   `json:"reasoning"`
	Recommendation string   `json:"recommendation"`
}

// ConcernFinding flags a module that mixes several responsibility areas.
type ConcernFinding struct {
	File           string              `json:"file"`
	Severity       Severity            `json:"severity"`
	Concerns       []string            `json:"concerns"`
	ConcernCount   int                 `json:"concern_count"`
	Evidence       map[string][]string `json:"evidence"`
	Reasoning      string              `json:"reasoning"`
	Recommendation string              `json:"recommendation"`
}

// CircularDependency is one import cycle. Files lists the chain with the
// starting module repeated at the end; Length is the number of distinct
// modules in the cycle.
type CircularDependency struct {
	Files          []string `json:"files"`
	Length         int      `json:"length"`
	Severity       Severity `json:"severity"`
	Reasoning      string   `json:"reasoning"`
	Recommendation string   `json:"recommendation"`
}

// GodModule flags a module doing too much, scored by an additive risk model.
type GodModule struct {
	File           string   `json:"file"`
	Severity       Severity `json:"severity"`
	RiskScore      int      `json:"risk_score"`
	FunctionCount  int      `json:"function_count"`
	ClassCount     int      `json:"class_count"`
	TotalLines     int      `json:"total_lines"`
	Reasons        []string `json:"reasons"`
	Reasoning      string   `json:"reasoning"`
	Recommendation string   `json:"recommendation"`
}

// CouplingAnalysis summarizes project-wide coupling.
type CouplingAnalysis struct {
	CouplingDensity   float64            `json:"coupling_density"`
	AvgFanIn          float64            `json:"avg_fan_in"`
	AvgFanOut         float64            `json:"avg_fan_out"`
	MaxFanIn          int                `json:"max_fan_in"`
	TotalDependencies int                `json:"total_dependencies"`
	Assessment        string             `json:"assessment"`
	InstabilityByFile map[string]float64 `json:"instability_by_file"`
}

// PatternMatch names the architectural pattern the file layout most resembles.
type PatternMatch struct {
	DetectedPattern   string   `json:"detected_pattern"`
	Confidence        float64  `json:"confidence"`
	MatchedIndicators []string `json:"matched_indicators"`
}

// CategoryPenalty is one line of the score breakdown.
type CategoryPenalty struct {
	Penalty int `json:"penalty"`
	Count   int `json:"count"`
}

// CouplingPenalty is the coupling line of the score breakdown.
type CouplingPenalty struct {
	Penalty int     `json:"penalty"`
	Density float64 `json:"density"`
}

// ScoreBreakdown itemizes how the health score was reduced from 100.
type ScoreBreakdown struct {
	Bottlenecks          CategoryPenalty `json:"bottlenecks"`
	ConcernSeparation    CategoryPenalty `json:"concern_separation"`
	CircularDependencies CategoryPenalty `json:"circular_dependencies"`
	GodModules           CategoryPenalty `json:"god_modules"`
	Coupling             CouplingPenalty `json:"coupling"`
}

// Recommendation is one prioritized refactoring step.
type Recommendation struct {
	Priority int    `json:"priority"`
	Category string `json:"category"`
	Target   string `json:"target"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Effort   string `json:"effort"`
}

// ArchReport is the full architectural assessment of a project.
type ArchReport struct {
	Pattern         *PatternMatch        `json:"architecture_pattern"`
	Score           int                  `json:"architecture_score"`
	Grade           string               `json:"architecture_grade"`
	Breakdown       *ScoreBreakdown      `json:"score_breakdown"`
	Bottlenecks     []Bottleneck         `json:"bottlenecks"`
	ConcernFindings []ConcernFinding     `json:"concern_separation"`
	Cycles          []CircularDependency `json:"circular_dependencies"`
	GodModules      []GodModule          `json:"god_modules"`
	Coupling        *CouplingAnalysis    `json:"coupling_analysis"`
	Recommendations []Recommendation     `json:"strategic_recommendations"`
	Summary         string               `json:"summary"`
}

// NewArchReport creates a report with empty findings so serialized output
// carries empty lists rather than nulls.
func NewArchReport() *ArchReport {
	return &ArchReport{
		Bottlenecks:     make([]Bottleneck, 0),
		ConcernFindings: make([]ConcernFinding, 0),
		Cycles:          make([]CircularDependency, 0),
		GodModules:      make([]GodModule, 0),
		Recommendations: make([]Recommendation, 0),
	}
}

// FindingCount returns the total number of findings across all detectors.
func (r *ArchReport) FindingCount() int {
	return len(r.Bottlenecks) + len(r.ConcernFindings) + len(r.Cycles) + len(r.GodModules)
}

// GradeForScore maps a health score to a letter grade.
func GradeForScore(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// ArchThresholds tunes the reasoning engines. Zero values are not meaningful;
// use DefaultArchThresholds and override from config.
type ArchThresholds struct {
	FanInWarning          int     `json:"fan_in_warning" koanf:"fan_in_warning"`
	FanInCritical         int     `json:"fan_in_critical" koanf:"fan_in_critical"`
	AvgComplexityHigh     float64 `json:"avg_complexity_high" koanf:"avg_complexity_high"`
	MaxComplexityCritical int     `json:"max_complexity_critical" koanf:"max_complexity_critical"`
	LargeFunctionCount    int     `json:"large_function_count" koanf:"large_function_count"`
	MinMixedConcerns      int     `json:"min_mixed_concerns" koanf:"min_mixed_concerns"`
	GodModuleMinRisk      int     `json:"god_module_min_risk" koanf:"god_module_min_risk"`
}

// DefaultArchThresholds returns the standard detection thresholds.
func DefaultArchThresholds() ArchThresholds {
	return ArchThresholds{
		FanInWarning:          5,
		FanInCritical:         8,
		AvgComplexityHigh:     8,
		MaxComplexityCritical: 15,
		LargeFunctionCount:    10,
		MinMixedConcerns:      3,
		GodModuleMinRisk:      5,
	}
}
