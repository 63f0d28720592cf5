package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeFacts() string {
	return `Extracts structured facts from every Python file in a project: functions, classes, imports, globals, docstrings, type-hint coverage, and line composition, plus a project-level summary.

USE WHEN:
- Building a mental model of an unfamiliar Python codebase
- Finding entry points, frameworks, and the overall tech stack
- Locating the most complex or longest functions to read first
- Checking docstring and type-hint coverage before a review

INTERPRETING RESULTS:
- summary: file counts, language stats, entry points, has_tests/has_ci flags
- project_metrics: hotspot_functions and longest_functions are the top 10 by
  complexity and length; start reading there
- type_hint_coverage near 1.0 means a well-annotated codebase; null means the
  file has no annotatable parameters
- files with an error field failed to parse; their other fields are empty
- unused_imports lists imported names never referenced in the file

METRICS RETURNED:
- Per-file: functions (signature, complexity, docstring), classes, imports,
  globals, decorators_used, unused_imports, line partition, fingerprint
- Project: totals, complexity distribution, docstring/type-hint coverage,
  median file length, tech stack`
}

func describeComplexity() string {
	return `Measures cyclomatic complexity and nesting depth of Python functions across a codebase.

USE WHEN:
- Identifying functions that are hard to test or maintain
- Finding refactoring candidates before code reviews
- Assessing overall code quality trends
- Prioritizing technical debt remediation

INTERPRETING RESULTS:
- Complexity 1-5: simple, easy to test
- Complexity 6-10: moderate, acceptable for most code
- Complexity 11-20: complex, consider splitting
- Complexity > 20: very complex, strong refactoring candidate
- Nesting > 3: deeply nested code, consider early returns or extraction

METRICS RETURNED:
- Per-function: complexity, nesting depth, line span
- Per-file: function list, average and max complexity
- Distribution: function counts per complexity band`
}

func describeGraph() string {
	return `Builds the import dependency graph between a project's Python modules.

USE WHEN:
- Understanding how modules depend on each other
- Finding circular imports before they cause runtime failures
- Identifying the most depended-upon modules (change blast radius)
- Planning a refactor that moves code between modules

INTERPRETING RESULTS:
- fan_in: how many modules import this one; high fan-in means changes ripple
- fan_out: how many modules this one imports; high fan-out means fragile
- instability: fan_out / (fan_in + fan_out); 0 is stable, 1 is unstable
- centrality: PageRank over the import graph; high scores mark load-bearing modules
- Only imports that resolve to files inside the project create edges;
  stdlib and third-party imports are ignored

METRICS RETURNED:
- edges and reverse_edges keyed by file path
- fan_metrics per module (fan_in, fan_out, depends_on, depended_by, instability)
- centrality per module, plus a Mermaid rendering for visualization`
}

func describeArchitecture() string {
	return `Reasons over facts and the dependency graph to assess architectural health: bottlenecks, mixed concerns, circular dependencies, god modules, coupling, and an overall score.

USE WHEN:
- Assessing a codebase's structural health before taking ownership
- Deciding what to refactor first for the most leverage
- Explaining architectural risk to non-experts (the report is narrative)
- Tracking architecture drift across releases via the score

INTERPRETING RESULTS:
- architecture_score: 100 is clean; grades A (>=90) through F (<45)
- bottlenecks: modules with high fan-in plus internal complexity; changes
  to these ripple across every dependent
- god_modules: additive risk from function count, class count, lines, and
  dependents; risk >= 15 is CRITICAL
- concern_separation: modules mixing 3+ responsibility areas (I/O, network,
  database, business logic, presentation, logging, testing)
- circular_dependencies: each closed import chain, reported once
- strategic_recommendations: prioritized actions, most urgent first

METRICS RETURNED:
- Findings per detector with severity, reasoning, and a concrete recommendation
- score_breakdown itemizing every penalty, coupling_analysis, detected pattern,
  and a markdown summary`
}
