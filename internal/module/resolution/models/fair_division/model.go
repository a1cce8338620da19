package fair_division

import (
	"context"
	"errors"
	"time"

	"fairdivisiondss/internal/module/resolution/fair_division/dto"
	"fairdivisiondss/internal/module/resolution/models/fair_division/diagnostics"
	"fairdivisiondss/internal/module/resolution/models/fair_division/loader"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver/maxmin"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver/nash"
	"fairdivisiondss/internal/shared"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
)

// FairDivisionModel computes fair allocations of divisible goods among agents
// with heterogeneous preferences and entitlement weights, and verifies them
// against the standard game-theoretic criteria.
type FairDivisionModel struct {
	name        string
	description string
}

// NewFairDivisionModel creates a new fair division model
func NewFairDivisionModel() *FairDivisionModel {
	return &FairDivisionModel{
		name:        "fair_division",
		description: "Fair allocation of divisible goods with 2 solver variants (MaxMin egalitarian LP, Nash social welfare) and fairness diagnostics",
	}
}

func (m *FairDivisionModel) Name() string        { return m.name }
func (m *FairDivisionModel) Description() string { return m.description }

// Validate validates the input before execution
func (m *FairDivisionModel) Validate(ctx context.Context, input interface{}) error {
	fi, ok := input.(*dto.FairDivisionModelInput)
	if !ok {
		return errors.New("input must be *dto.FairDivisionModelInput type")
	}

	if !solver.Method(fi.Method).Valid() {
		return shared.NewInvalidInput("method must be \"maxmin\" or \"nash\"").
			WithDetails("method", fi.Method)
	}
	if fi.Epsilon < 0 {
		return shared.NewInvalidInput("epsilon must be positive")
	}
	if fi.TimeLimitSeconds < 0 {
		return shared.NewInvalidInput("time limit must be non-negative")
	}
	if len(fi.Dispute.Agents) == 0 {
		return shared.NewDisputeInvalid("dispute has no agents")
	}
	if len(fi.Dispute.Goods) == 0 {
		return shared.NewDisputeInvalid("dispute has no goods")
	}

	return nil
}

// Execute runs the selected solver over the dispute and, when requested,
// the fairness diagnostics over its allocation.
func (m *FairDivisionModel) Execute(ctx context.Context, input interface{}) (interface{}, error) {
	fi := input.(*dto.FairDivisionModelInput)

	dispute, err := dto.ToDispute(&fi.Dispute)
	if err != nil {
		return nil, err
	}

	inputs, index, err := loader.BuildSolverInputs(dispute)
	if err != nil {
		return nil, err
	}
	if fi.Epsilon > 0 {
		inputs.Epsilon = fi.Epsilon
	}

	opts := solver.Options{
		MaxIterations: fi.MaxIterations,
		Engine:        fi.Engine,
	}
	if fi.TimeLimitSeconds > 0 {
		opts.TimeLimit = time.Duration(fi.TimeLimitSeconds * float64(time.Second))
	}

	var result *domain.AllocationResult
	switch solver.Method(fi.Method) {
	case solver.MethodMaxMin:
		result, err = maxmin.Solve(inputs, opts)
	case solver.MethodNash:
		result, err = nash.Solve(inputs, opts)
	default:
		return nil, shared.NewInvalidInput("method must be \"maxmin\" or \"nash\"").
			WithDetails("method", fi.Method)
	}
	if err != nil {
		return nil, err
	}

	output := dto.NewModelOutput(dispute, index, fi.Method, result)

	if fi.RunDiagnostics && result.SolverStatus != domain.StatusInfeasible {
		report, err := diagnostics.AnalyzeFairness(
			result.Allocation, inputs.Utilities, inputs.Entitlements, 0)
		if err != nil {
			return nil, err
		}
		output.Fairness = dto.NewFairnessOutput(report, diagnostics.RenderReport(report))
	}

	return output, nil
}
