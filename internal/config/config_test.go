package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"complexity/internal/analyzer"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, oracleURL, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if opts != analyzer.DefaultOptions() {
		t.Errorf("Load() with missing file = %+v, want defaults", opts)
	}
	if oracleURL != "" {
		t.Errorf("oracleURL = %q, want empty", oracleURL)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	opts, _, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v, want nil", err)
	}
	if opts != analyzer.DefaultOptions() {
		t.Errorf("Load(\"\") = %+v, want defaults", opts)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "complexity.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadOverlaysProvidedFields(t *testing.T) {
	path := writeConfig(t, `
analysis-timeout-ms: 2000
min-confidence-to-emit: 0.6
show-space-complexity: true
oracle-url: "ws://localhost:9000"
`)
	opts, oracleURL, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if opts.AnalysisTimeout != 2*time.Second {
		t.Errorf("AnalysisTimeout = %v, want 2s", opts.AnalysisTimeout)
	}
	if float64(opts.MinConfidenceToEmit) != 0.6 {
		t.Errorf("MinConfidenceToEmit = %v, want 0.6", opts.MinConfidenceToEmit)
	}
	if !opts.ShowSpaceComplexity {
		t.Errorf("ShowSpaceComplexity = false, want true")
	}
	if oracleURL != "ws://localhost:9000" {
		t.Errorf("oracleURL = %q, want ws://localhost:9000", oracleURL)
	}
	// Unset fields keep their defaults.
	if opts.PerMethodTimeout != analyzer.DefaultOptions().PerMethodTimeout {
		t.Errorf("PerMethodTimeout = %v, want default", opts.PerMethodTimeout)
	}
}

func TestLoadRejectsOutOfRangeConfidence(t *testing.T) {
	path := writeConfig(t, "min-confidence-to-emit: 1.5\n")
	if _, _, err := Load(path); err == nil {
		t.Errorf("Load() with min-confidence-to-emit: 1.5 = nil error, want one")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	path := writeConfig(t, "per-method-timeout-ms: 0\n")
	if _, _, err := Load(path); err == nil {
		t.Errorf("Load() with per-method-timeout-ms: 0 = nil error, want one")
	}
}
