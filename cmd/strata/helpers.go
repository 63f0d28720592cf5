package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halcyonic/strata/internal/output"
	"github.com/halcyonic/strata/internal/progress"
	"github.com/halcyonic/strata/internal/scanner"
	"github.com/halcyonic/strata/internal/vcs"
	"github.com/halcyonic/strata/pkg/analyzer"
	"github.com/halcyonic/strata/pkg/config"
	"github.com/halcyonic/strata/pkg/parser"
	"github.com/urfave/cli/v2"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the active configuration: an explicit --config path
// wins, otherwise the standard search chain applies.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds the output formatter from the global flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
}

// scanFiles walks the given paths and returns the Python source files.
// Direct file paths are kept when the scanner recognizes them.
func scanFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.NewScanner(cfg)
	seen := make(map[string]bool)
	var files []string

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		if !info.IsDir() {
			ok, err := scan.ScanFile(absPath)
			if err != nil {
				return nil, err
			}
			if ok && !seen[absPath] {
				seen[absPath] = true
				files = append(files, absPath)
			}
			continue
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// scanInventory walks the directory paths and returns every recognized file,
// feeding the project inventory and pattern detection.
func scanInventory(cfg *config.Config, paths []string) []string {
	scan := scanner.NewScanner(cfg)
	seen := make(map[string]bool)
	var files []string

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		info, err := os.Stat(absPath)
		if err != nil || !info.IsDir() {
			continue
		}
		found, err := scan.ScanAll(absPath)
		if err != nil {
			continue
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files
}

// resolveTree opens the git repository containing root and returns the tree
// of the given revision.
func resolveTree(root, ref string) (vcs.Tree, error) {
	repo, err := vcs.DefaultOpener().PlainOpenWithDetect(root)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", root, err)
	}
	hash, err := repo.ResolveRevision(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving ref %q: %w", ref, err)
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	return commit.Tree()
}

// treeFiles lists the Python files and the full inventory of a git tree,
// honoring the config exclusion rules.
func treeFiles(tree vcs.Tree, cfg *config.Config) (python []string, all []string, err error) {
	entries, err := tree.Entries()
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		if cfg.ShouldExclude(entry.Path) {
			continue
		}
		all = append(all, entry.Path)
		if parser.DetectLanguage(entry.Path) == parser.LangPython {
			python = append(python, entry.Path)
		}
	}
	sort.Strings(python)
	sort.Strings(all)
	return python, all, nil
}

// trackedContext attaches a progress bar to the context so the worker pool
// reports per-file completion.
func trackedContext(ctx context.Context, label string, total int) (context.Context, *progress.Tracker) {
	bar := progress.NewTracker(label, total)
	tracker := analyzer.NewTracker(func(current, totalCount int, path string) {
		bar.Tick()
	})
	tracker.SetTotal(total)
	return analyzer.WithTracker(ctx, tracker), bar
}

// relativize rewrites scanned file paths relative to root so fact documents,
// module identifiers, and graph edges use the same root-relative form as
// git-tree analysis. Paths outside root are kept as given.
func relativize(root string, files []string) []string {
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil || strings.HasPrefix(r, "..") {
			rel = append(rel, f)
			continue
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

// docRoot picks the document root for project summaries: the first directory
// argument, falling back to the current directory.
func docRoot(paths []string) string {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs
		}
	}
	return "."
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
