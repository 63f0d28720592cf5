package facts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/stats"
)

// languageByExt maps source file extensions to display language names.
var languageByExt = map[string]string{
	".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".jsx": "React JSX", ".tsx": "React TSX",
	".java": "Java", ".go": "Go", ".rs": "Rust", ".rb": "Ruby",
	".php": "PHP", ".cs": "C#", ".cpp": "C++", ".c": "C",
	".swift": "Swift", ".kt": "Kotlin", ".dart": "Dart",
}

// techIndicators maps well-known file names to the tooling they imply.
var techIndicators = map[string]string{
	"package.json": "Node.js", "requirements.txt": "Python (pip)",
	"Pipfile": "Python (Pipenv)", "pyproject.toml": "Python",
	"Cargo.toml": "Rust", "go.mod": "Go", "Gemfile": "Ruby",
	"composer.json": "PHP", "pom.xml": "Java (Maven)",
	"build.gradle": "Gradle", "Dockerfile": "Docker",
	"docker-compose.yml": "Docker Compose", "tsconfig.json": "TypeScript",
	"Makefile": "Make", ".env": "dotenv",
}

// frameworkPackages maps package.json dependency names to framework labels.
var frameworkPackages = map[string]string{
	"react": "React", "vue": "Vue.js", "@angular/core": "Angular",
	"express": "Express.js", "fastify": "Fastify", "next": "Next.js",
	"nuxt": "Nuxt.js", "django": "Django", "flask": "Flask",
	"fastapi": "FastAPI", "prisma": "Prisma", "tailwindcss": "Tailwind CSS",
	"nestjs": "NestJS", "@nestjs/core": "NestJS",
	"svelte": "Svelte", "remix": "Remix",
}

// entryPointNames are conventional executable entry file names.
var entryPointNames = map[string]bool{
	"main.py": true, "app.py": true, "server.py": true, "index.py": true,
	"manage.py": true, "wsgi.py": true,
	"index.js": true, "index.ts": true, "main.js": true, "main.ts": true,
	"server.js": true, "server.ts": true, "app.js": true, "app.ts": true,
	"main.go": true, "main.rs": true, "Main.java": true, "Program.cs": true,
}

// hotspotLimit caps the ranked hotspot and longest-function lists.
const hotspotLimit = 10

// BuildDocument assembles the complete facts document for a project from the
// scanned file inventory and the extracted per-file facts.
func BuildDocument(root string, scanned []string, files []*models.FileFacts) *models.FactsDocument {
	inventory := buildInventory(root, scanned)

	return &models.FactsDocument{
		AnalyzedAt: time.Now().UTC(),
		Summary:    buildSummary(root, scanned, inventory, files),
		Metrics:    ComputeMetrics(files),
		AllFiles:   inventory,
		Files:      files,
	}
}

// buildInventory records every recognized source file with its language and
// line count. Unreadable files are kept with a zero count.
func buildInventory(root string, scanned []string) []models.ProjectFile {
	inventory := make([]models.ProjectFile, 0, len(scanned))

	for _, path := range scanned {
		lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			continue
		}

		var lines int
		if content, err := os.ReadFile(path); err == nil {
			lines = strings.Count(string(content), "\n") + 1
		}

		inventory = append(inventory, models.ProjectFile{
			Path:     relPath(root, path),
			Language: lang,
			Lines:    lines,
		})
	}

	return inventory
}

func buildSummary(root string, scanned []string, inventory []models.ProjectFile, files []*models.FileFacts) *models.ProjectSummary {
	summary := &models.ProjectSummary{
		ProjectName:      filepath.Base(root),
		RootPath:         root,
		TotalFiles:       len(inventory),
		TotalPythonFiles: len(files),
		EntryPoints:      make([]string, 0),
		LanguageStats:    make(map[string]models.LanguageStat),
		TechStack:        detectTechStack(root, scanned, inventory),
	}

	for _, pf := range inventory {
		stat := summary.LanguageStats[pf.Language]
		stat.Files++
		stat.Lines += pf.Lines
		summary.LanguageStats[pf.Language] = stat

		summary.TotalLines += pf.Lines
		if strings.Contains(strings.ToLower(pf.Path), "test") {
			summary.HasTests = true
		}
		if strings.HasPrefix(pf.Path, ".github/workflows") {
			summary.HasCI = true
		}
	}

	for _, path := range scanned {
		if entryPointNames[filepath.Base(path)] {
			summary.EntryPoints = append(summary.EntryPoints, relPath(root, path))
		}
	}
	sort.Strings(summary.EntryPoints)

	for _, f := range files {
		if f.Failed() {
			summary.FailedFiles++
			continue
		}
		summary.TotalCodeLines += f.CodeLines
		summary.TotalFunctions += f.FunctionCount
		summary.TotalClasses += f.ClassCount
	}

	return summary
}

// detectTechStack derives languages, frameworks, and tooling hints from the
// file inventory and the root package.json when one exists.
func detectTechStack(root string, scanned []string, inventory []models.ProjectFile) *models.TechStack {
	stack := models.NewTechStack()

	languages := make(map[string]bool)
	for _, pf := range inventory {
		languages[pf.Language] = true
	}

	tools := make(map[string]bool)
	for _, path := range scanned {
		if tool, ok := techIndicators[filepath.Base(path)]; ok {
			tools[tool] = true
		}
	}

	frameworks := make(map[string]bool)
	if content, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkg struct {
			Dependencies    map[string]string `json:"dependencies"`
			DevDependencies map[string]string `json:"devDependencies"`
		}
		if json.Unmarshal(content, &pkg) == nil {
			for dep, fw := range frameworkPackages {
				if _, ok := pkg.Dependencies[dep]; ok {
					frameworks[fw] = true
				}
				if _, ok := pkg.DevDependencies[dep]; ok {
					frameworks[fw] = true
				}
			}
		}
	}

	stack.Languages = sortedKeys(languages)
	stack.Frameworks = sortedKeys(frameworks)
	stack.Tools = sortedKeys(tools)
	return stack
}

// ComputeMetrics aggregates per-function facts into project-wide metrics.
// Error records contribute nothing.
func ComputeMetrics(files []*models.FileFacts) *models.ProjectMetrics {
	metrics := models.DefaultProjectMetrics()

	type ranked struct {
		fn   models.FunctionFact
		file string
	}
	var all []ranked

	for _, f := range files {
		if f.Failed() {
			continue
		}
		for _, fn := range f.Functions {
			all = append(all, ranked{fn: fn, file: f.Path})
		}
		metrics.TotalClasses += f.ClassCount
	}

	metrics.TotalFunctions = len(all)
	if len(all) == 0 {
		return metrics
	}

	complexities := make([]float64, len(all))
	complexityInts := make([]int, len(all))
	lengths := make([]float64, len(all))
	var withDocstrings int

	for i, r := range all {
		complexities[i] = float64(r.fn.Complexity)
		complexityInts[i] = r.fn.Complexity
		lengths[i] = float64(r.fn.LineCount)

		metrics.ComplexityDistribution[models.BandFor(r.fn.Complexity)]++
		if r.fn.Complexity > metrics.MaxComplexity {
			metrics.MaxComplexity = r.fn.Complexity
		}
		if r.fn.LineCount > metrics.MaxFunctionLength {
			metrics.MaxFunctionLength = r.fn.LineCount
		}
		if r.fn.HasDocstring {
			withDocstrings++
		}
	}

	metrics.AvgComplexity = stats.Round2(stats.Mean(complexities))
	metrics.MedianComplexity = stats.MedianInt(complexityInts)
	metrics.AvgFunctionLength = stats.Round2(stats.Mean(lengths))
	metrics.DocstringCoverage = stats.Round2(float64(withDocstrings) / float64(len(all)))

	var coverages []float64
	for _, f := range files {
		if f.TypeHintCoverage != nil {
			coverages = append(coverages, *f.TypeHintCoverage)
		}
	}
	if len(coverages) > 0 {
		metrics.TypeHintCoverage = stats.Round2(stats.Mean(coverages))
	}

	byComplexity := make([]ranked, len(all))
	copy(byComplexity, all)
	sort.SliceStable(byComplexity, func(i, j int) bool {
		return byComplexity[i].fn.Complexity > byComplexity[j].fn.Complexity
	})
	for _, r := range byComplexity[:min(hotspotLimit, len(byComplexity))] {
		metrics.HotspotFunctions = append(metrics.HotspotFunctions, models.HotspotFunction{
			Name:       r.fn.Name,
			File:       r.file,
			Complexity: r.fn.Complexity,
			Line:       r.fn.Line,
			LineCount:  r.fn.LineCount,
		})
	}

	byLength := make([]ranked, len(all))
	copy(byLength, all)
	sort.SliceStable(byLength, func(i, j int) bool {
		return byLength[i].fn.LineCount > byLength[j].fn.LineCount
	})
	for _, r := range byLength[:min(hotspotLimit, len(byLength))] {
		metrics.LongestFunctions = append(metrics.LongestFunctions, models.HotspotFunction{
			Name:       r.fn.Name,
			File:       r.file,
			Complexity: r.fn.Complexity,
			Line:       r.fn.Line,
			LineCount:  r.fn.LineCount,
		})
	}

	return metrics
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
