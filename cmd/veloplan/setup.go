package main

import (
	"context"
	"fmt"

	"github.com/veloworks/veloplan/internal/dataset"
	"github.com/veloworks/veloplan/internal/milp"
	"github.com/veloworks/veloplan/internal/params"
	"github.com/veloworks/veloplan/internal/planconfig"
	"github.com/veloworks/veloplan/internal/simplex"
)

const defaultConfigPath = "veloplan.yaml"

// configPath resolves the optional positional config argument.
func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigPath
}

// loadPlanInputs loads the plan configuration and derives the planning
// parameters from its dataset.
func loadPlanInputs(path string) (*planconfig.PlanConfig, *params.Parameters, error) {
	cfg, err := planconfig.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Dataset == "" {
		return nil, nil, fmt.Errorf("%s: no dataset configured", path)
	}

	records, err := dataset.LoadCSV(cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}

	crossovers := make([]params.Crossover, 0, len(cfg.Crossovers))
	for _, cv := range cfg.Crossovers {
		crossovers = append(crossovers, params.Crossover{
			Name:         cv.Name,
			ComponentMix: cv.ComponentMix,
		})
	}

	p, err := params.Derive(records, params.Options{
		Crossovers:   crossovers,
		PremiumTypes: cfg.PremiumTypes,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// newSolver builds the configured solver backend.
func newSolver(cfg planconfig.SolverConfig) (milp.Solver, error) {
	switch cfg.Name {
	case "simplex":
		return simplex.New(cfg.Options)
	default:
		return nil, fmt.Errorf("unknown solver backend %q", cfg.Name)
	}
}

// modelWeights maps configured weights onto the builder's weight set.
func modelWeights(w planconfig.Weights) milp.Weights {
	return milp.Weights{
		Profit:    w.Profit,
		Waste:     w.Waste,
		Time:      w.Time,
		Quantity:  w.Quantity,
		Diversity: w.Diversity,
	}
}

// buildOptions maps the quota configuration onto builder options.
func buildOptions(cfg *planconfig.PlanConfig) milp.Options {
	var opts milp.Options
	if cfg.Quota.Enabled {
		opts.Quota = &milp.Quota{
			NonPremiumMin: cfg.Quota.NonPremiumMin,
			PremiumMax:    cfg.Quota.PremiumMax,
		}
	}
	return opts
}

// solveBaseline builds and solves the baseline model with the configured
// solver backend. A non-optimal status is surfaced as InfeasiblePlanError;
// no partial result is returned.
func solveBaseline(ctx context.Context, cfg *planconfig.PlanConfig, p *params.Parameters) (*milp.Solution, milp.Terms, error) {
	solver, err := newSolver(cfg.Solver)
	if err != nil {
		return nil, milp.Terms{}, err
	}
	return solveWith(ctx, solver, cfg, p)
}

func solveWith(ctx context.Context, solver milp.Solver, cfg *planconfig.PlanConfig, p *params.Parameters) (*milp.Solution, milp.Terms, error) {
	m, terms := milp.Build(p, modelWeights(cfg.Weights), buildOptions(cfg))
	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return nil, milp.Terms{}, fmt.Errorf("solving baseline model: %w", err)
	}
	if sol.Status != milp.StatusOptimal {
		return nil, milp.Terms{}, &InfeasiblePlanError{
			Message: fmt.Sprintf("no feasible optimal plan: solver returned status %s", sol.Status),
		}
	}
	return sol, terms, nil
}
