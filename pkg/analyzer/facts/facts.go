// Package facts extracts the per-file fact model from Python sources and
// assembles the project-level facts document.
package facts

import (
	"context"
	"sort"

	"github.com/halcyonic/strata/internal/fileproc"
	"github.com/halcyonic/strata/pkg/analyzer"
	"github.com/halcyonic/strata/pkg/models"
	"github.com/halcyonic/strata/pkg/parser"
	"github.com/halcyonic/strata/pkg/source"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[[]*models.FileFacts] = (*Analyzer)(nil)

// Analyzer extracts file facts across a set of Python files.
type Analyzer struct {
	parser      *parser.Parser
	maxFileSize int64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// New creates a new facts analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser:      parser.New(),
		maxFileSize: 0,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile extracts facts from a single file on disk.
func (a *Analyzer) AnalyzeFile(path string) (*models.FileFacts, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return extract(result), nil
}

// AnalyzeSource extracts facts from in-memory source.
func (a *Analyzer) AnalyzeSource(src []byte, path string) (*models.FileFacts, error) {
	result, err := a.parser.Parse(src, path)
	if err != nil {
		return nil, err
	}
	return extract(result), nil
}

// Analyze extracts facts from all files in parallel, reading from disk.
// Files with syntax errors produce error records rather than failing the
// run. Progress is tracked via context using analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) ([]*models.FileFacts, error) {
	results, _ := fileproc.MapFilesWithSizeLimit(ctx, files, a.maxFileSize, func(psr *parser.Parser, path string) (*models.FileFacts, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return &models.FileFacts{Path: path, Error: err.Error()}, nil
		}
		return extract(result), nil
	})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// AnalyzeFrom extracts facts reading content from an arbitrary source, such
// as a git tree.
func (a *Analyzer) AnalyzeFrom(ctx context.Context, files []string, src source.ContentSource) ([]*models.FileFacts, error) {
	results := fileproc.MapSourceFilesWithSizeLimit(ctx, files, src, a.maxFileSize, func(psr *parser.Parser, path string, content []byte) (*models.FileFacts, error) {
		result, err := psr.Parse(content, path)
		if err != nil {
			return &models.FileFacts{Path: path, Error: err.Error()}, nil
		}
		return extract(result), nil
	})

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}
