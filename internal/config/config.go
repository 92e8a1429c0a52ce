// Package config loads the configuration surface spec §6 names under
// "Configuration recognized" from an optional YAML file, defaulting
// every field to analyzer.DefaultOptions where the file is silent or
// absent. It follows the teacher's own preference for a small
// dependency-light surface: a single flat struct, no schema validation
// library, just yaml.v3 unmarshal plus hand-checked ranges.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"complexity/internal/analyzer"
	"complexity/internal/complexity"
)

// File is the on-disk shape of a complexity config file, usually named
// ".complexity.yaml" or passed explicitly via --config.
type File struct {
	AnalysisTimeoutMS     *int     `yaml:"analysis-timeout-ms"`
	PerMethodTimeoutMS    *int     `yaml:"per-method-timeout-ms"`
	MinConfidenceToEmit   *float64 `yaml:"min-confidence-to-emit"`
	MaxCallDepth          *int     `yaml:"max-call-depth"`
	ShowSpaceComplexity   *bool    `yaml:"show-space-complexity"`
	ShowConfidence        *bool    `yaml:"show-confidence"`
	UseSymbolicMathOracle *bool    `yaml:"use-symbolic-math-oracle"`
	OracleURL             *string  `yaml:"oracle-url"`
}

// Load reads and validates a YAML config file at path, returning
// analyzer.Options built by overlaying the file's fields onto
// analyzer.DefaultOptions. A missing file is not an error: Load returns
// the defaults unchanged, since every field in File is optional.
func Load(path string) (analyzer.Options, string, error) {
	opts := analyzer.DefaultOptions()
	oracleURL := ""

	if path == "" {
		return opts, oracleURL, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, oracleURL, nil
	}
	if err != nil {
		return opts, oracleURL, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return opts, oracleURL, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := f.validate(); err != nil {
		return opts, oracleURL, fmt.Errorf("config: %s: %w", path, err)
	}

	f.applyTo(&opts)
	if f.OracleURL != nil {
		oracleURL = *f.OracleURL
	}
	return opts, oracleURL, nil
}

func (f File) validate() error {
	if f.AnalysisTimeoutMS != nil && *f.AnalysisTimeoutMS <= 0 {
		return fmt.Errorf("analysis-timeout-ms must be positive, got %d", *f.AnalysisTimeoutMS)
	}
	if f.PerMethodTimeoutMS != nil && *f.PerMethodTimeoutMS <= 0 {
		return fmt.Errorf("per-method-timeout-ms must be positive, got %d", *f.PerMethodTimeoutMS)
	}
	if f.MinConfidenceToEmit != nil && (*f.MinConfidenceToEmit < 0 || *f.MinConfidenceToEmit > 1) {
		return fmt.Errorf("min-confidence-to-emit must be within [0,1], got %v", *f.MinConfidenceToEmit)
	}
	if f.MaxCallDepth != nil && *f.MaxCallDepth <= 0 {
		return fmt.Errorf("max-call-depth must be positive, got %d", *f.MaxCallDepth)
	}
	return nil
}

func (f File) applyTo(opts *analyzer.Options) {
	if f.AnalysisTimeoutMS != nil {
		opts.AnalysisTimeout = time.Duration(*f.AnalysisTimeoutMS) * time.Millisecond
	}
	if f.PerMethodTimeoutMS != nil {
		opts.PerMethodTimeout = time.Duration(*f.PerMethodTimeoutMS) * time.Millisecond
	}
	if f.MinConfidenceToEmit != nil {
		opts.MinConfidenceToEmit = complexity.Confidence(*f.MinConfidenceToEmit)
	}
	if f.MaxCallDepth != nil {
		opts.MaxCallDepth = *f.MaxCallDepth
	}
	if f.ShowSpaceComplexity != nil {
		opts.ShowSpaceComplexity = *f.ShowSpaceComplexity
	}
	if f.ShowConfidence != nil {
		opts.ShowConfidence = *f.ShowConfidence
	}
	if f.UseSymbolicMathOracle != nil {
		opts.UseSymbolicMathOracle = *f.UseSymbolicMathOracle
	}
}
