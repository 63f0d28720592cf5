package facts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
	"github.com/halcyonic/strata/pkg/analyzer/complexity"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/parser"
	"github.com/halcyonic/strata/pkg/stats"
	sitter "github.com/smacker/go-tree-sitter"
)

// maxCalls caps the outbound-call list per function.
const maxCalls = 20

// extractor accumulates per-file state during a single extraction pass.
type extractor struct {
	result *parser.ParseResult
	facts  *models.FileFacts

	decoratorsUsed map[string]struct{}
	usedNames      map[string]struct{}

	typedSlots int
	typedHits  int
}

// extract runs the full fact extraction for one parsed file. A tree with
// syntax errors yields an error record carrying only the path and line total.
func extract(result *parser.ParseResult) *models.FileFacts {
	totalLines := strings.Count(string(result.Source), "\n") + 1

	if result.HasSyntaxError() {
		return &models.FileFacts{
			Path:       result.Path,
			Error:      fmt.Sprintf("SyntaxError: invalid syntax (line %d)", result.FirstErrorLine()),
			TotalLines: totalLines,
		}
	}

	e := &extractor{
		result: result,
		facts: &models.FileFacts{
			Path:           result.Path,
			TotalLines:     totalLines,
			Functions:      make([]models.FunctionFact, 0),
			Classes:        make([]models.ClassFact, 0),
			Imports:        make([]models.ImportFact, 0),
			Globals:        make([]models.GlobalFact, 0),
			DecoratorsUsed: make([]string, 0),
			UnusedImports:  make([]string, 0),
			Fingerprint:    fmt.Sprintf("%016x", xxhash.Sum64(result.Source)),
		},
		decoratorsUsed: make(map[string]struct{}),
		usedNames:      make(map[string]struct{}),
	}

	e.classifyLines()

	root := result.Tree.RootNode()
	e.facts.HasModuleDocstring = docstringOf(root, result.Source) != nil
	e.extractGlobals(root)
	e.walkDefinitions(root)
	e.collectNameUsage(root)
	e.finish()

	return e.facts
}

// classifyLines partitions source lines into code, comment, and blank sets.
func (e *extractor) classifyLines() {
	comments := roaring.New()
	blanks := roaring.New()

	for i, line := range strings.Split(string(e.result.Source), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blanks.Add(uint32(i))
		case strings.HasPrefix(trimmed, "#"):
			comments.Add(uint32(i))
		}
	}

	e.facts.CommentLines = int(comments.GetCardinality())
	e.facts.BlankLines = int(blanks.GetCardinality())
	e.facts.CodeLines = e.facts.TotalLines - e.facts.CommentLines - e.facts.BlankLines
}

// walkDefinitions visits every function, class, and import in the tree,
// including definitions nested inside other scopes.
func (e *extractor) walkDefinitions(root *sitter.Node) {
	parser.WalkTyped(root, e.result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		switch nodeType {
		case "function_definition":
			e.extractFunction(node)
		case "class_definition":
			e.extractClass(node)
		case "import_statement":
			e.extractImport(node)
			return false
		case "import_from_statement":
			e.extractFromImport(node)
			return false
		}
		return true
	})
}

func (e *extractor) extractFunction(node *sitter.Node) {
	source := e.result.Source

	name := parser.GetNodeText(node.ChildByFieldName("name"), source)
	params := collectParams(node.ChildByFieldName("parameters"), source)
	returnType := node.ChildByFieldName("return_type")
	decorators := e.extractDecorators(node)

	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1

	fact := models.FunctionFact{
		Name:           name,
		Signature:      renderSignature(name, params, returnType, source),
		Line:           startLine,
		EndLine:        endLine,
		LineCount:      endLine - startLine + 1,
		Complexity:     complexity.Calculate(node, source),
		NestingDepth:   complexity.MaxNesting(node),
		IsAsync:        isAsync(node),
		IsClassmethod:  containsExact(decorators, "classmethod"),
		IsStaticmethod: containsExact(decorators, "staticmethod"),
		Decorators:     decorators,
		HasReturnType:  returnType != nil,
		Calls:          extractCalls(node, source),
	}

	for _, d := range decorators {
		if strings.Contains(d, "property") {
			fact.IsProperty = true
			break
		}
	}

	var counted, typed int
	for _, p := range params {
		if p.name == "self" {
			fact.IsMethod = true
		}
		if !p.counted || p.receiver {
			continue
		}
		counted++
		if p.typed {
			typed++
		}
	}

	fact.ParamCount = counted
	if counted > 0 {
		fact.TypedParamRatio = stats.Round2(float64(typed) / float64(counted))
	} else {
		fact.TypedParamRatio = 1.0
	}

	e.typedSlots += counted + 1
	e.typedHits += typed
	if fact.HasReturnType {
		e.typedHits++
	}

	if doc := docstringOf(node.ChildByFieldName("body"), source); doc != nil {
		fact.HasDocstring = true
		fact.DocstringSummary = docstringSummary(*doc)
	}

	e.facts.Functions = append(e.facts.Functions, fact)
}

func (e *extractor) extractClass(node *sitter.Node) {
	source := e.result.Source

	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1

	fact := models.ClassFact{
		Name:           parser.GetNodeText(node.ChildByFieldName("name"), source),
		Line:           startLine,
		EndLine:        endLine,
		LineCount:      endLine - startLine + 1,
		Bases:          make([]string, 0),
		Methods:        make([]string, 0),
		ClassVariables: make([]string, 0),
		Decorators:     e.extractDecorators(node),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := range int(supers.NamedChildCount()) {
			fact.Bases = append(fact.Bases, exprText(supers.NamedChild(i), source))
		}
	}

	body := node.ChildByFieldName("body")
	if doc := docstringOf(body, source); doc != nil {
		fact.HasDocstring = true
		fact.DocstringSummary = docstringSummary(*doc)
	}

	if body != nil {
		for i := range int(body.NamedChildCount()) {
			child := body.NamedChild(i)
			switch child.Type() {
			case "function_definition":
				fact.Methods = append(fact.Methods, parser.GetNodeText(child.ChildByFieldName("name"), source))
			case "decorated_definition":
				if def := child.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
					fact.Methods = append(fact.Methods, parser.GetNodeText(def.ChildByFieldName("name"), source))
				}
			case "expression_statement":
				fact.ClassVariables = append(fact.ClassVariables, assignmentTargets(child.NamedChild(0), source)...)
			}
		}
	}
	fact.MethodCount = len(fact.Methods)

	e.facts.Classes = append(e.facts.Classes, fact)
}

// extractDecorators reads decorators off the enclosing decorated_definition,
// recording the call-free name of each in the file-wide decorator set.
func (e *extractor) extractDecorators(node *sitter.Node) []string {
	decorators := make([]string, 0)

	parent := node.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return decorators
	}

	for i := range int(parent.NamedChildCount()) {
		child := parent.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		text := strings.TrimPrefix(exprText(child, e.result.Source), "@")
		decorators = append(decorators, text)
		name, _, _ := strings.Cut(text, "(")
		e.decoratorsUsed[name] = struct{}{}
	}

	return decorators
}

func (e *extractor) extractImport(node *sitter.Node) {
	source := e.result.Source
	names := make([]string, 0)

	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			names = append(names, parser.GetNodeText(child, source))
		case "aliased_import":
			names = append(names, parser.GetNodeText(child.ChildByFieldName("name"), source))
		}
	}

	e.facts.Imports = append(e.facts.Imports, models.ImportFact{
		Kind:  models.ImportDirect,
		Names: names,
		Line:  int(node.StartPoint().Row) + 1,
	})
}

func (e *extractor) extractFromImport(node *sitter.Node) {
	source := e.result.Source

	var module string
	modNode := node.ChildByFieldName("module_name")
	if modNode != nil {
		// Relative imports keep only the named part: "from .utils import x"
		// records module "utils", "from . import x" records "".
		module = strings.TrimLeft(parser.GetNodeText(modNode, source), ".")
	}

	names := make([]string, 0)
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if modNode != nil && child.Equal(modNode) {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			names = append(names, parser.GetNodeText(child, source))
		case "aliased_import":
			names = append(names, parser.GetNodeText(child.ChildByFieldName("name"), source))
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	e.facts.Imports = append(e.facts.Imports, models.ImportFact{
		Kind:   models.ImportFrom,
		Module: module,
		Names:  names,
		Line:   int(node.StartPoint().Row) + 1,
	})
}

// extractGlobals records module-level assignment targets.
func (e *extractor) extractGlobals(root *sitter.Node) {
	for i := range int(root.NamedChildCount()) {
		stmt := root.NamedChild(i)
		if stmt.Type() != "expression_statement" {
			continue
		}
		for _, name := range assignmentTargets(stmt.NamedChild(0), e.result.Source) {
			e.facts.Globals = append(e.facts.Globals, models.GlobalFact{
				Name: name,
				Line: int(stmt.StartPoint().Row) + 1,
			})
		}
	}
}

// collectNameUsage records every referenced identifier and attribute chain.
// Import statements are skipped so imports cannot mark themselves used.
func (e *extractor) collectNameUsage(root *sitter.Node) {
	parser.WalkTyped(root, e.result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		switch nodeType {
		case "import_statement", "import_from_statement":
			return false
		case "identifier":
			e.usedNames[parser.GetNodeText(node, source)] = struct{}{}
		case "attribute":
			e.usedNames[exprText(node, source)] = struct{}{}
			if obj := node.ChildByFieldName("object"); obj != nil && obj.Type() == "identifier" {
				e.usedNames[parser.GetNodeText(obj, source)] = struct{}{}
			}
		}
		return true
	})
}

// finish computes the derived file-level metrics.
func (e *extractor) finish() {
	f := e.facts

	for name := range e.decoratorsUsed {
		f.DecoratorsUsed = append(f.DecoratorsUsed, name)
	}
	sort.Strings(f.DecoratorsUsed)

	for _, name := range f.ImportedShortNames() {
		if _, used := e.usedNames[name]; !used {
			f.UnusedImports = append(f.UnusedImports, name)
		}
	}
	sort.Strings(f.UnusedImports)
	f.UnusedImports = dedupeSorted(f.UnusedImports)

	if e.typedSlots > 0 {
		coverage := stats.Round2(float64(e.typedHits) / float64(e.typedSlots))
		f.TypeHintCoverage = &coverage
	}

	var total int
	for _, fn := range f.Functions {
		total += fn.Complexity
		if fn.Complexity > f.MaxComplexity {
			f.MaxComplexity = fn.Complexity
		}
	}
	if len(f.Functions) > 0 {
		f.AvgComplexity = stats.Round2(float64(total) / float64(len(f.Functions)))
	}

	f.FunctionCount = len(f.Functions)
	f.ClassCount = len(f.Classes)
}

// docstringOf returns the docstring content when a block's first statement is
// a bare string literal, nil otherwise.
func docstringOf(block *sitter.Node, source []byte) *string {
	if block == nil || block.NamedChildCount() == 0 {
		return nil
	}
	stmt := block.NamedChild(0)
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return nil
	}
	str := stmt.NamedChild(0)
	if str.Type() != "string" && str.Type() != "concatenated_string" {
		return nil
	}
	value := stringLiteralValue(parser.GetNodeText(str, source))
	return &value
}

// assignmentTargets returns the identifier targets of an assignment node,
// following chained assignments ("a = b = 1").
func assignmentTargets(node *sitter.Node, source []byte) []string {
	var targets []string
	for node != nil && node.Type() == "assignment" {
		if left := node.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			targets = append(targets, parser.GetNodeText(left, source))
		}
		node = node.ChildByFieldName("right")
	}
	return targets
}

// extractCalls returns distinct call targets in first-seen order, capped at
// maxCalls.
func extractCalls(node *sitter.Node, source []byte) []string {
	calls := make([]string, 0)
	seen := make(map[string]struct{})

	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if len(calls) >= maxCalls {
			return false
		}
		if nodeType != "call" {
			return true
		}
		name := exprText(n.ChildByFieldName("function"), src)
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			calls = append(calls, name)
		}
		return true
	})

	return calls
}

func isAsync(node *sitter.Node) bool {
	for i := range int(node.ChildCount()) {
		if node.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

func dedupeSorted(items []string) []string {
	out := items[:0]
	for i, item := range items {
		if i == 0 || item != items[i-1] {
			out = append(out, item)
		}
	}
	return out
}

func containsExact(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
