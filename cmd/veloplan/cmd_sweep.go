package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veloworks/veloplan/internal/analysis"
)

var sweepWorkers int

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [veloplan.yaml]",
		Short: "Compare objective-weight combinations across a grid",
		Long: `Compare objective-weight combinations across a grid.

Builds and solves a fresh model for every combination in the cartesian
product of the configured weight grids. Optimal combinations are collected
into a comparative table; non-optimal ones are logged and excluded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sweepCommandE,
	}

	cmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Number of concurrent solve workers (default: from config)")

	return cmd
}

func sweepCommandE(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadPlanInputs(configPath(args))
	if err != nil {
		return err
	}
	if !cfg.HasSweepGrids() {
		return fmt.Errorf("sweep grids are not configured: every weight needs at least one candidate value")
	}

	solver, err := newSolver(cfg.Solver)
	if err != nil {
		return err
	}

	workers := cfg.Sweep.Workers
	if sweepWorkers > 0 {
		workers = sweepWorkers
	}

	grids := analysis.Grids{
		Profit:   cfg.Sweep.Profit,
		Waste:    cfg.Sweep.Waste,
		Time:     cfg.Sweep.Time,
		Quantity: cfg.Sweep.Quantity,
	}
	results, err := analysis.WeightSweep(cmd.Context(), p, grids, solver, workers)
	if err != nil {
		return err
	}

	printSweepReport(cmd.OutOrStdout(), grids, results)
	return nil
}
