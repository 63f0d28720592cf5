package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Analysis.Facts || !cfg.Analysis.Complexity || !cfg.Analysis.Graph || !cfg.Analysis.Architecture {
		t.Error("expected all analyzers enabled by default")
	}
	if cfg.Thresholds.FanInWarning != 5 {
		t.Errorf("FanInWarning = %d, want 5", cfg.Thresholds.FanInWarning)
	}
	if cfg.Thresholds.FanInCritical != 8 {
		t.Errorf("FanInCritical = %d, want 8", cfg.Thresholds.FanInCritical)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
	if cfg.Cache.Dir != ".strata/cache" {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Output.Format)
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strata.toml")
	content := `
[analysis]
graph = false
max_file_size = 2048

[thresholds]
fan_in_warning = 3
fan_in_critical = 6

[output]
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Analysis.Graph {
		t.Error("expected graph analyzer disabled")
	}
	if cfg.Analysis.MaxFileSize != 2048 {
		t.Errorf("max file size = %d, want 2048", cfg.Analysis.MaxFileSize)
	}
	if cfg.Thresholds.FanInWarning != 3 {
		t.Errorf("FanInWarning = %d, want 3", cfg.Thresholds.FanInWarning)
	}
	if cfg.Thresholds.FanInCritical != 6 {
		t.Errorf("FanInCritical = %d, want 6", cfg.Thresholds.FanInCritical)
	}
	// Unset keys keep their defaults.
	if !cfg.Analysis.Facts {
		t.Error("expected facts analyzer still enabled")
	}
	if cfg.Thresholds.GodModuleMinRisk != 5 {
		t.Errorf("GodModuleMinRisk = %d, want default 5", cfg.Thresholds.GodModuleMinRisk)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strata.yaml")
	content := `
thresholds:
  avg_complexity_high: 6
exclude:
  dirs:
    - generated
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Thresholds.AvgComplexityHigh != 6 {
		t.Errorf("AvgComplexityHigh = %v, want 6", cfg.Thresholds.AvgComplexityHigh)
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "generated" {
		t.Errorf("exclude dirs = %v", cfg.Exclude.Dirs)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strata.json")
	content := `{"cache": {"enabled": false, "ttl": 48}}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Cache.Enabled {
		t.Error("expected cache disabled")
	}
	if cfg.Cache.TTL != 48 {
		t.Errorf("TTL = %d, want 48", cfg.Cache.TTL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/strata.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOrDefaultFindsFile(t *testing.T) {
	tmpDir := t.TempDir()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	content := `
[output]
format = "markdown"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "strata.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadOrDefault()
	if cfg.Output.Format != "markdown" {
		t.Errorf("format = %q, want markdown", cfg.Output.Format)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	tmpDir := t.TempDir()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	cfg := LoadOrDefault()
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want default text", cfg.Output.Format)
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.py", false},
		{"node_modules/react/index.js", true},
		{"src/node_modules/pkg/index.js", true},
		{"__pycache__/app.cpython-312.pyc", true},
		{"poetry.lock", true},
		{"assets/site.min.js", true},
		{"src/main.py", false},
	}

	for _, tt := range tests {
		if got := cfg.ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
