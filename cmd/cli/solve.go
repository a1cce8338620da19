package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fairdivisiondss/internal/config"
	appfx "fairdivisiondss/internal/fx"
	"fairdivisiondss/internal/module/resolution/fair_division/dto"
	"fairdivisiondss/internal/module/resolution/fair_division/service"
)

var (
	solveInputPath string
	solveMethod    string
	solveAnalyze   bool
	solveJSON      bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a dispute from a JSON file",
	Long: `Solve reads a dispute document (agents, goods, bids or ratings,
restrictions) from a JSON file, runs the selected allocation method and
prints the solution. With --analyze the fairness report is included;
--method both runs MaxMin and Nash side by side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve()
	},
}

func init() {
	solveCmd.Flags().StringVarP(&solveInputPath, "input", "i", "", "path to the dispute JSON file (required)")
	solveCmd.Flags().StringVarP(&solveMethod, "method", "m", "maxmin", "allocation method: maxmin, nash or both")
	solveCmd.Flags().BoolVarP(&solveAnalyze, "analyze", "a", false, "include the fairness analysis report")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "emit JSON instead of text")
	_ = solveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(solveCmd)
}

func runSolve() error {
	raw, err := os.ReadFile(solveInputPath)
	if err != nil {
		return fmt.Errorf("read dispute file: %w", err)
	}

	var dispute dto.DisputeInput
	if err := json.Unmarshal(raw, &dispute); err != nil {
		return fmt.Errorf("parse dispute file: %w", err)
	}

	var (
		svc    service.Service
		cfg    *config.Config
		logger *zap.Logger
	)
	app := fx.New(
		appfx.App,
		fx.NopLogger,
		fx.Populate(&svc, &cfg, &logger),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("assemble application: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	input := &dto.FairDivisionModelInput{
		Dispute:          dispute,
		Method:           solveMethod,
		RunDiagnostics:   solveAnalyze,
		Epsilon:          cfg.Solver.Epsilon,
		TimeLimitSeconds: cfg.Solver.TimeLimitSeconds,
		MaxIterations:    cfg.Solver.MaxIterations,
		Engine:           cfg.Solver.Engine,
	}

	ctx := context.Background()

	if solveMethod == "both" {
		input.Method = "maxmin"
		comparison, err := svc.Compare(ctx, input)
		if err != nil {
			return err
		}
		return emit(comparison, comparison.MaxMin, comparison.Nash)
	}

	output, err := svc.Resolve(ctx, input)
	if err != nil {
		return err
	}
	return emit(output, output)
}

// emit prints either the JSON form of payload or the text form of each output.
func emit(payload interface{}, outputs ...*dto.FairDivisionModelOutput) error {
	if solveJSON {
		encoded, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	for _, output := range outputs {
		printOutput(output)
	}
	return nil
}

func printOutput(output *dto.FairDivisionModelOutput) {
	fmt.Printf("Method:    %s\n", output.Method)
	fmt.Printf("Status:    %s\n", output.SolverStatus)
	fmt.Printf("Objective: %.6f\n", output.ObjectiveValue)
	fmt.Printf("Time:      %dms\n", output.ComputationTimeMs)
	if output.Error != "" {
		fmt.Printf("Error:     %s\n", output.Error)
	}

	if len(output.Allocations) > 0 {
		fmt.Println("Allocations:")
		for _, item := range output.Allocations {
			fmt.Printf("  %-20s <- %-20s %.4f\n", displayName(item.AgentName, item.AgentID), displayName(item.GoodName, item.GoodID), item.Fraction)
		}
	}
	if len(output.AgentUtilities) > 0 {
		fmt.Println("Utilities:")
		for agentID, utility := range output.AgentUtilities {
			fmt.Printf("  %s: %.4f\n", agentID, utility)
		}
	}
	if output.Fairness != nil && output.Fairness.ReportText != "" {
		fmt.Println()
		fmt.Print(output.Fairness.ReportText)
	}
	fmt.Println()
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
