package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "veloplan",
		Short: "Veloplan - bicycle production planning under component-inventory limits",
		Long: `Veloplan plans bicycle production under component-inventory limits by
formulating and solving a weighted integer linear program.

It derives economic parameters from a component dataset, builds the decision
model, and interprets the solve into production and inventory reports. Two
analysis harnesses re-run the model: a demand-mix sensitivity sweep and a
grid sweep over objective weights.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	}

	// Add subcommands
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newSensitivityCommand())
	cmd.AddCommand(newSweepCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
