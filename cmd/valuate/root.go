package main

import (
	"github.com/spf13/cobra"

	"carvaluator/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "valuate",
	Short: "Estimate used vehicle prices from marketplace listings",
	Long: `valuate scrapes a marketplace search for a make and model, extracts the listed
vehicles and estimates the price of a target vehicle from comparable listings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
