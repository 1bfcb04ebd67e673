package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signalnine/flexreport/internal/report"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInput       = "result.csv"
	DefaultSmallMap    = "21x35"
	DefaultDigits      = 4
	DefaultFloatDigits = 5
)

type Config struct {
	Input           string   `yaml:"input"`
	OutputDir       string   `yaml:"output_dir"`
	PlotsDir        string   `yaml:"plots_dir"`
	SmallMap        string   `yaml:"small_map"`
	TaskMultipliers []int    `yaml:"task_multipliers"`
	Digits          int      `yaml:"significant_digits"`
	FloatDigits     int      `yaml:"csv_float_digits"`
	Analyses        []string `yaml:"analyses"`
	LogLevel        string   `yaml:"log_level"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	if err := validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func validate(cfg *Config) error {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.SmallMap == "" {
		cfg.SmallMap = DefaultSmallMap
	}
	if len(cfg.TaskMultipliers) == 0 {
		cfg.TaskMultipliers = []int{10}
	}
	for _, k := range cfg.TaskMultipliers {
		if k < 1 {
			return fmt.Errorf("task multiplier %d must be at least 1", k)
		}
	}
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Digits < 1 {
		return fmt.Errorf("significant_digits must be at least 1")
	}
	if cfg.FloatDigits == 0 {
		cfg.FloatDigits = DefaultFloatDigits
	}
	if cfg.FloatDigits < 0 {
		return fmt.Errorf("csv_float_digits must not be negative")
	}
	if len(cfg.Analyses) == 0 {
		cfg.Analyses = []string{report.Tasks}
	}
	for _, a := range cfg.Analyses {
		if !slices.Contains(report.Analyses, a) {
			return fmt.Errorf("unknown analysis %q (want one of %s)", a, strings.Join(report.Analyses, ", "))
		}
	}
	return nil
}

// Output is the directory for CSV summaries: output_dir, or the input
// file's directory.
func (c *Config) Output() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Dir(c.Input)
}

// Plots is the chart directory: plots_dir, or <output>/plots.
func (c *Config) Plots() string {
	if c.PlotsDir != "" {
		return c.PlotsDir
	}
	return filepath.Join(c.Output(), "plots")
}

// Options converts the configuration for report.Generate.
func (c *Config) Options() report.Options {
	return report.Options{
		Analyses:        c.Analyses,
		SmallMap:        c.SmallMap,
		TaskMultipliers: c.TaskMultipliers,
		Digits:          c.Digits,
		FloatDigits:     c.FloatDigits,
		PlotsDir:        c.Plots(),
		OutputDir:       c.Output(),
	}
}
