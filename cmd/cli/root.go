package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fairdivision",
	Short: "Fair Division DSS - game-theoretic allocation of divisible goods",
	Long: `Fair Division DSS computes fair allocations of divisible goods among
agents with heterogeneous preferences and entitlement weights, and verifies
the allocations against standard game-theoretic criteria (envy-freeness,
proportionality, Pareto efficiency, symmetry).`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
