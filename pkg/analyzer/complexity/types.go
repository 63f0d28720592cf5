package complexity

// FunctionResult holds the complexity profile of a single function or method.
type FunctionResult struct {
	Name         string `json:"name"`
	StartLine    uint32 `json:"start_line"`
	EndLine      uint32 `json:"end_line"`
	Complexity   int    `json:"complexity"`
	NestingDepth int    `json:"nesting_depth"`
	Lines        int    `json:"lines"`
}

// FileResult aggregates function complexity for one file.
type FileResult struct {
	Path            string           `json:"path"`
	Functions       []FunctionResult `json:"functions"`
	TotalComplexity int              `json:"total_complexity"`
	AvgComplexity   float64          `json:"avg_complexity"`
	MaxComplexity   int              `json:"max_complexity"`
}

// Analysis is the full complexity analysis result.
type Analysis struct {
	Files   []FileResult `json:"files"`
	Summary Summary      `json:"summary"`
}

// Summary provides aggregate statistics across all analyzed files.
type Summary struct {
	TotalFiles       int            `json:"total_files"`
	TotalFunctions   int            `json:"total_functions"`
	AvgComplexity    float64        `json:"avg_complexity"`
	MedianComplexity int            `json:"median_complexity"`
	MaxComplexity    int            `json:"max_complexity"`
	P90Complexity    float64        `json:"p90_complexity"`
	Distribution     map[string]int `json:"distribution"`
}
