// Package planconfig provides the PlanConfig struct and loader for
// veloplan.yaml planning configuration files.
package planconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for planning configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultProfitWeight    = 0.01
	DefaultWasteWeight     = 2.0
	DefaultTimeWeight      = 3.0
	DefaultQuantityWeight  = 1.0
	DefaultDiversityWeight = 0.0

	DefaultNonPremiumMin = 0.2
	DefaultPremiumMax    = 0.8

	DefaultSolverName = "simplex"

	DefaultSweepWorkers = 4
)

// Weights holds the objective-term weights. Waste, time, and diversity are
// penalties (subtracted from the objective); profit and quantity are rewards.
type Weights struct {
	Profit    float64 `yaml:"profit"`
	Waste     float64 `yaml:"waste"`
	Time      float64 `yaml:"time"`
	Quantity  float64 `yaml:"quantity"`
	Diversity float64 `yaml:"diversity,omitempty"`
}

// Quota bounds the premium/non-premium share of total production.
type Quota struct {
	Enabled       bool    `yaml:"enabled"`
	NonPremiumMin float64 `yaml:"non_premium_min"`
	PremiumMax    float64 `yaml:"premium_max"`
}

// Crossover declares a synthesized bike type that borrows component
// requirements from specific quality variants in the source data.
type Crossover struct {
	Name         string            `yaml:"name"`
	ComponentMix map[string]string `yaml:"component_mix"`
}

// SolverConfig selects a solver backend and carries backend-specific options
// as an opaque map (decoded by the backend itself).
type SolverConfig struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options,omitempty"`
}

// SweepConfig holds the candidate weight grids for the weight sweep.
// Diversity is held at zero across the sweep.
type SweepConfig struct {
	Workers  int       `yaml:"workers,omitempty"`
	Profit   []float64 `yaml:"profit"`
	Waste    []float64 `yaml:"waste"`
	Time     []float64 `yaml:"time"`
	Quantity []float64 `yaml:"quantity"`
}

// SensitivityConfig holds the discrete perturbation levels, expressed as
// standard-deviation multipliers applied to each price tier's probability.
type SensitivityConfig struct {
	Levels []float64 `yaml:"levels,omitempty"`
}

// PlanConfig is the top-level configuration loaded from veloplan.yaml.
type PlanConfig struct {
	Dataset      string            `yaml:"dataset"`
	Weights      Weights           `yaml:"weights"`
	Quota        Quota             `yaml:"quota"`
	PremiumTypes []string          `yaml:"premium_types,omitempty"`
	Crossovers   []Crossover       `yaml:"crossovers,omitempty"`
	Solver       SolverConfig      `yaml:"solver,omitempty"`
	Sweep        SweepConfig       `yaml:"sweep,omitempty"`
	Sensitivity  SensitivityConfig `yaml:"sensitivity,omitempty"`
}

// New returns a PlanConfig with all hard-coded defaults populated.
func New() *PlanConfig {
	return &PlanConfig{
		Weights: Weights{
			Profit:    DefaultProfitWeight,
			Waste:     DefaultWasteWeight,
			Time:      DefaultTimeWeight,
			Quantity:  DefaultQuantityWeight,
			Diversity: DefaultDiversityWeight,
		},
		Quota: Quota{
			Enabled:       true,
			NonPremiumMin: DefaultNonPremiumMin,
			PremiumMax:    DefaultPremiumMax,
		},
		Solver: SolverConfig{Name: DefaultSolverName},
		Sweep: SweepConfig{
			Workers: DefaultSweepWorkers,
		},
		Sensitivity: SensitivityConfig{
			Levels: []float64{-1, 0, 1},
		},
	}
}

// Load reads a PlanConfig from a YAML file, applying defaults for any
// omitted section.
func Load(path string) (*PlanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("planconfig: read %s: %w", path, err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("planconfig: parse %s: %w", path, err)
	}
	if cfg.Sweep.Workers < 1 {
		cfg.Sweep.Workers = DefaultSweepWorkers
	}
	if len(cfg.Sensitivity.Levels) == 0 {
		cfg.Sensitivity.Levels = []float64{-1, 0, 1}
	}
	if cfg.Solver.Name == "" {
		cfg.Solver.Name = DefaultSolverName
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *PlanConfig) Validate() error {
	if c.Quota.Enabled {
		if c.Quota.NonPremiumMin < 0 || c.Quota.NonPremiumMin > 1 {
			return fmt.Errorf("quota non_premium_min must be in [0,1], got %v", c.Quota.NonPremiumMin)
		}
		if c.Quota.PremiumMax < 0 || c.Quota.PremiumMax > 1 {
			return fmt.Errorf("quota premium_max must be in [0,1], got %v", c.Quota.PremiumMax)
		}
	}
	seen := make(map[string]bool, len(c.Crossovers))
	for _, cv := range c.Crossovers {
		if cv.Name == "" {
			return fmt.Errorf("crossover with empty name")
		}
		if seen[cv.Name] {
			return fmt.Errorf("duplicate crossover %q", cv.Name)
		}
		seen[cv.Name] = true
		if len(cv.ComponentMix) == 0 {
			return fmt.Errorf("crossover %q has an empty component_mix", cv.Name)
		}
	}
	return nil
}

// HasSweepGrids reports whether every weight grid has at least one candidate.
func (c *PlanConfig) HasSweepGrids() bool {
	return len(c.Sweep.Profit) > 0 && len(c.Sweep.Waste) > 0 &&
		len(c.Sweep.Time) > 0 && len(c.Sweep.Quantity) > 0
}
