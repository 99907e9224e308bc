package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/veloworks/veloplan/internal/milp"
	"github.com/veloworks/veloplan/internal/params"
	"github.com/veloworks/veloplan/internal/report"
)

// Grids holds the candidate values for the four primary objective weights.
// The diversity weight is pinned to zero for the whole sweep.
type Grids struct {
	Profit   []float64
	Waste    []float64
	Time     []float64
	Quantity []float64
}

// Combinations returns the size of the cartesian product.
func (g Grids) Combinations() int {
	return len(g.Profit) * len(g.Waste) * len(g.Time) * len(g.Quantity)
}

// SweepResult is the comparative record of one optimal sweep iteration.
type SweepResult struct {
	Index   int
	Weights milp.Weights
	Label   string

	Objective     float64
	TotalProduced int
	TotalUnused   float64
	TotalHours    float64
	TotalProfit   float64
	TotalRevenue  float64
}

// WeightLabel is the compact identifier of a weight combination used in
// comparative tables.
func WeightLabel(w milp.Weights) string {
	return fmt.Sprintf("P:%g | I:%g | T:%g | Q:%g", w.Profit, w.Waste, w.Time, w.Quantity)
}

// WeightSweep solves the model once per weight combination in the cartesian
// product of the grids. Each iteration builds a completely fresh model; the
// only shared state is the read-only parameters. Iterations run in parallel
// on up to workers goroutines. Non-optimal combinations are logged and
// excluded; the returned results are ordered by combination index.
func WeightSweep(ctx context.Context, p *params.Parameters, grids Grids, solver milp.Solver, workers int) ([]SweepResult, error) {
	n := grids.Combinations()
	if n == 0 {
		return nil, errors.New("analysis: every weight grid needs at least one value")
	}
	if workers <= 0 {
		workers = 1
	}

	combos := make([]milp.Weights, 0, n)
	for _, pw := range grids.Profit {
		for _, iw := range grids.Waste {
			for _, tw := range grids.Time {
				for _, qw := range grids.Quantity {
					combos = append(combos, milp.Weights{Profit: pw, Waste: iw, Time: tw, Quantity: qw})
				}
			}
		}
	}

	slots := make([]*SweepResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range combos {
		i, w := i, w
		g.Go(func() error {
			m, _ := milp.Build(p, w, milp.Options{})
			sol, err := solver.Solve(ctx, m)
			if err != nil {
				return fmt.Errorf("analysis: sweep combination %s: %w", WeightLabel(w), err)
			}
			if sol.Status != milp.StatusOptimal {
				slog.Warn("sweep combination excluded",
					"weights", WeightLabel(w), "status", string(sol.Status))
				return nil
			}

			r, err := report.Interpret(p, sol)
			if err != nil {
				return fmt.Errorf("analysis: sweep combination %s: %w", WeightLabel(w), err)
			}
			slots[i] = &SweepResult{
				Index:         i,
				Weights:       w,
				Label:         WeightLabel(w),
				Objective:     sol.Objective,
				TotalProduced: r.TotalProduced,
				TotalUnused:   r.TotalUnused,
				TotalHours:    r.TotalHours,
				TotalProfit:   r.TotalProfit,
				TotalRevenue:  r.TotalRevenue,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, n)
	for _, s := range slots {
		if s != nil {
			results = append(results, *s)
		}
	}
	return results, nil
}
