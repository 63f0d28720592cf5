package models

import "strings"

// FunctionFact describes a single function or method extracted from a source file.
type FunctionFact struct {
	Name             string   `json:"name"`
	Signature        string   `json:"signature"`
	Line             int      `json:"line"`
	EndLine          int      `json:"end_line"`
	LineCount        int      `json:"line_count"`
	Complexity       int      `json:"complexity"`
	HasDocstring     bool     `json:"has_docstring"`
	DocstringSummary string   `json:"docstring_summary,omitempty"`
	IsAsync          bool     `json:"is_async"`
	IsMethod         bool     `json:"is_method"`
	IsClassmethod    bool     `json:"is_classmethod"`
	IsStaticmethod   bool     `json:"is_staticmethod"`
	IsProperty       bool     `json:"is_property"`
	Decorators       []string `json:"decorators"`
	ParamCount       int      `json:"param_count"`
	HasReturnType    bool     `json:"has_return_type"`
	TypedParamRatio  float64  `json:"typed_param_ratio"`
	NestingDepth     int      `json:"nesting_depth"`
	Calls            []string `json:"calls"`
}

// ClassFact describes a class definition.
type ClassFact struct {
	Name             string   `json:"name"`
	Line             int      `json:"line"`
	EndLine          int      `json:"end_line"`
	LineCount        int      `json:"line_count"`
	Bases            []string `json:"bases"`
	HasDocstring     bool     `json:"has_docstring"`
	DocstringSummary string   `json:"docstring_summary,omitempty"`
	MethodCount      int      `json:"method_count"`
	Methods          []string `json:"methods"`
	ClassVariables   []string `json:"class_variables"`
	Decorators       []string `json:"decorators"`
}

// ImportKind distinguishes plain imports from from-imports.
type ImportKind string

const (
	ImportDirect ImportKind = "import"
	ImportFrom   ImportKind = "from_import"
)

// ImportFact describes one import statement. Module is empty for plain
// imports and for relative from-imports ("from . import x").
type ImportFact struct {
	Kind   ImportKind `json:"kind"`
	Module string     `json:"module"`
	Names  []string   `json:"names"`
	Line   int        `json:"line"`
}

// GlobalFact describes a module-level assignment target.
type GlobalFact struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// FileFacts is the full set of facts extracted from one file. A file that
// failed to parse carries Error and TotalLines only.
type FileFacts struct {
	Path               string         `json:"path"`
	Error              string         `json:"error,omitempty"`
	TotalLines         int            `json:"total_lines"`
	CodeLines          int            `json:"code_lines"`
	CommentLines       int            `json:"comment_lines"`
	BlankLines         int            `json:"blank_lines"`
	HasModuleDocstring bool           `json:"has_module_docstring"`
	Functions          []FunctionFact `json:"functions"`
	Classes            []ClassFact    `json:"classes"`
	Imports            []ImportFact   `json:"imports"`
	Globals            []GlobalFact   `json:"global_variables"`
	DecoratorsUsed     []string       `json:"decorators_used"`
	UnusedImports      []string       `json:"unused_imports"`
	// TypeHintCoverage is nil when the file has no annotatable slots.
	TypeHintCoverage *float64 `json:"type_hint_coverage"`
	AvgComplexity    float64  `json:"avg_complexity"`
	MaxComplexity    int      `json:"max_complexity"`
	FunctionCount    int      `json:"function_count"`
	ClassCount       int      `json:"class_count"`
	Fingerprint      string   `json:"fingerprint,omitempty"`
}

// Failed reports whether extraction produced an error record for this file.
func (f *FileFacts) Failed() bool {
	return f.Error != ""
}

// ModuleName converts the file path to its dotted module identifier
// ("pkg/util/io.py" -> "pkg.util.io").
func (f *FileFacts) ModuleName() string {
	name := strings.ReplaceAll(f.Path, "\\", ".")
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.TrimSuffix(name, ".py")
	return strings.TrimSuffix(name, ".pyi")
}

// ImportedShortNames returns the short names this file's imports bind,
// used for unused-import detection.
func (f *FileFacts) ImportedShortNames() []string {
	var names []string
	for _, imp := range f.Imports {
		for _, n := range imp.Names {
			if i := strings.LastIndex(n, "."); i >= 0 {
				n = n[i+1:]
			}
			names = append(names, n)
		}
	}
	return names
}
