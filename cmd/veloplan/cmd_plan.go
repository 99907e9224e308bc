package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veloworks/veloplan/internal/report"
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [veloplan.yaml]",
		Short: "Solve the baseline production plan",
		Long: `Solve the baseline production plan.

Derives planning parameters from the configured dataset, builds the decision
model with the configured weights and quota, solves it, and prints the
production, inventory, and component-breakdown tables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: planCommandE,
	}

	return cmd
}

func planCommandE(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadPlanInputs(configPath(args))
	if err != nil {
		return err
	}

	sol, terms, err := solveBaseline(cmd.Context(), cfg, p)
	if err != nil {
		return err
	}

	r, err := report.Interpret(p, sol)
	if err != nil {
		return fmt.Errorf("interpreting solution: %w", err)
	}
	breakdown := report.Objective(terms, modelWeights(cfg.Weights), sol)

	printPlanReport(cmd.OutOrStdout(), r, breakdown)
	return nil
}
