package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veloworks/veloplan/internal/analysis"
	"github.com/veloworks/veloplan/internal/report"
)

func newSensitivityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [veloplan.yaml]",
		Short: "Analyze profit sensitivity to demand-mix uncertainty",
		Long: `Analyze profit sensitivity to demand-mix uncertainty.

Solves the baseline plan once, then perturbs the price tier probabilities by
the configured standard-deviation levels and recomputes WASP, revenue, and
profit at the fixed baseline production quantities. The model is never
re-solved; production is held constant by design.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sensitivityCommandE,
	}

	return cmd
}

func sensitivityCommandE(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadPlanInputs(configPath(args))
	if err != nil {
		return err
	}

	sol, _, err := solveBaseline(cmd.Context(), cfg, p)
	if err != nil {
		return err
	}
	r, err := report.Interpret(p, sol)
	if err != nil {
		return fmt.Errorf("interpreting baseline solution: %w", err)
	}

	produced := make(map[string]int, len(r.Production))
	for _, row := range r.Production {
		produced[row.BikeType] = row.Produced
	}

	rows := analysis.Sensitivity(p, produced, cfg.Sensitivity.Levels)
	printSensitivityReport(cmd.OutOrStdout(), rows)
	return nil
}
