package config_test

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/signalnine/flexreport/internal/config"
	"github.com/signalnine/flexreport/internal/report"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Input != "runs/result.csv" {
		t.Errorf("expected input runs/result.csv, got %q", cfg.Input)
	}
	if cfg.SmallMap != "21x35" {
		t.Errorf("expected default small map, got %q", cfg.SmallMap)
	}
	if !slices.Equal(cfg.TaskMultipliers, []int{10}) {
		t.Errorf("expected task multipliers [10], got %v", cfg.TaskMultipliers)
	}
	if cfg.Digits != 4 || cfg.FloatDigits != 5 {
		t.Errorf("expected digits 4/5, got %d/%d", cfg.Digits, cfg.FloatDigits)
	}
	if !slices.Equal(cfg.Analyses, []string{report.Tasks}) {
		t.Errorf("expected default analyses, got %v", cfg.Analyses)
	}
	if cfg.Output() != "runs" {
		t.Errorf("expected output dir next to input, got %q", cfg.Output())
	}
	if cfg.Plots() != filepath.Join("runs", "plots") {
		t.Errorf("expected plots under output dir, got %q", cfg.Plots())
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Analyses) != len(report.Analyses) {
		t.Errorf("expected every analysis, got %v", cfg.Analyses)
	}
	if !slices.Equal(cfg.TaskMultipliers, []int{10, 20, 30}) {
		t.Errorf("expected task multipliers [10 20 30], got %v", cfg.TaskMultipliers)
	}
	if cfg.Digits != 3 || cfg.FloatDigits != 6 {
		t.Errorf("expected digits 3/6, got %d/%d", cfg.Digits, cfg.FloatDigits)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	opts := cfg.Options()
	if opts.OutputDir != "out" || opts.PlotsDir != "out/figures" {
		t.Errorf("unexpected output paths %q %q", opts.OutputDir, opts.PlotsDir)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := config.LoadOptional("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}
	if cfg.Input != config.DefaultInput {
		t.Errorf("expected default input, got %q", cfg.Input)
	}
	if cfg.Output() != "." {
		t.Errorf("expected current dir output, got %q", cfg.Output())
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("../../testdata/invalid.yaml")
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := config.LoadOptional("../../testdata/invalid.yaml"); err == nil {
		t.Error("expected LoadOptional to report invalid YAML")
	}
}

func TestLoadUnknownAnalysis(t *testing.T) {
	_, err := config.Load("../../testdata/unknown-analysis.yaml")
	if err == nil || !strings.Contains(err.Error(), `"heatmap"`) {
		t.Errorf("expected unknown analysis error, got %v", err)
	}
}
