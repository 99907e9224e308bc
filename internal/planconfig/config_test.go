package planconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "veloplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "dataset: data/bikes.csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/bikes.csv", cfg.Dataset)
	assert.InDelta(t, DefaultProfitWeight, cfg.Weights.Profit, 1e-9)
	assert.InDelta(t, DefaultWasteWeight, cfg.Weights.Waste, 1e-9)
	assert.InDelta(t, DefaultTimeWeight, cfg.Weights.Time, 1e-9)
	assert.InDelta(t, DefaultQuantityWeight, cfg.Weights.Quantity, 1e-9)
	assert.Zero(t, cfg.Weights.Diversity)
	assert.True(t, cfg.Quota.Enabled)
	assert.InDelta(t, 0.2, cfg.Quota.NonPremiumMin, 1e-9)
	assert.InDelta(t, 0.8, cfg.Quota.PremiumMax, 1e-9)
	assert.Equal(t, "simplex", cfg.Solver.Name)
	assert.Equal(t, DefaultSweepWorkers, cfg.Sweep.Workers)
	assert.Equal(t, []float64{-1, 0, 1}, cfg.Sensitivity.Levels)
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
dataset: bikes.csv
weights:
  profit: 0.05
  waste: 1.5
  time: 2.5
  quantity: 0.5
quota:
  enabled: true
  non_premium_min: 0.3
  premium_max: 0.7
crossovers:
  - name: Hybrid_Crossover
    component_mix:
      Frame: Type B
      Wheels: Type A
      Saddle: Type C
solver:
  name: simplex
  options:
    max_nodes: 500
sweep:
  workers: 2
  profit: [0.01, 0.05]
  waste: [1.0, 2.0]
  time: [1.0]
  quantity: [1.0]
sensitivity:
  levels: [-2, -1, 0, 1, 2]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, cfg.Weights.Profit, 1e-9)
	require.Len(t, cfg.Crossovers, 1)
	assert.Equal(t, "Hybrid_Crossover", cfg.Crossovers[0].Name)
	assert.Equal(t, "Type B", cfg.Crossovers[0].ComponentMix["Frame"])
	assert.Equal(t, map[string]any{"max_nodes": 500}, cfg.Solver.Options)
	assert.True(t, cfg.HasSweepGrids())
	assert.Len(t, cfg.Sensitivity.Levels, 5)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanConfig)
		wantErr string
	}{
		{
			"quota_out_of_range",
			func(c *PlanConfig) { c.Quota.NonPremiumMin = 1.5 },
			"non_premium_min",
		},
		{
			"premium_max_negative",
			func(c *PlanConfig) { c.Quota.PremiumMax = -0.1 },
			"premium_max",
		},
		{
			"crossover_empty_name",
			func(c *PlanConfig) {
				c.Crossovers = []Crossover{{ComponentMix: map[string]string{"Frame": "Type A"}}}
			},
			"empty name",
		},
		{
			"crossover_duplicate",
			func(c *PlanConfig) {
				c.Crossovers = []Crossover{
					{Name: "X", ComponentMix: map[string]string{"Frame": "Type A"}},
					{Name: "X", ComponentMix: map[string]string{"Frame": "Type B"}},
				}
			},
			"duplicate crossover",
		},
		{
			"crossover_empty_mix",
			func(c *PlanConfig) {
				c.Crossovers = []Crossover{{Name: "X"}}
			},
			"empty component_mix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
