package domain

import (
	"fmt"
	"math"
	"time"

	"fairdivisiondss/internal/shared"
)

// SolverStatus classifies the outcome of a solve.
type SolverStatus string

const (
	StatusOptimal    SolverStatus = "optimal"
	StatusFeasible   SolverStatus = "feasible"
	StatusInfeasible SolverStatus = "infeasible"
)

const (
	// AllocationTolerance bounds how negative an allocation entry may be.
	AllocationTolerance = 1e-9
	// ColumnSumTolerance bounds the deviation of each good's column sum from 1.
	ColumnSumTolerance = 1e-6
)

// AllocationResult is the outcome of one allocation solve. Construct it with
// NewAllocationResult or NewInfeasibleResult; the constructors enforce the
// feasibility invariants.
type AllocationResult struct {
	// Allocation[i][j] is the fraction of good j assigned to agent i.
	Allocation [][]float64
	// Utilities[i] = sum_j Allocation[i][j] * U[i][j].
	Utilities []float64
	// ObjectiveValue is solver specific: min_i U_i/w_i for MaxMin,
	// sum_i w^_i log U_i for Nash.
	ObjectiveValue float64
	SolverStatus   SolverStatus
	SolveTime      time.Duration
	Metadata       map[string]interface{}
}

// NewAllocationResult validates and assembles a result. Column sums must be
// 1 within ColumnSumTolerance and no entry may be below -AllocationTolerance;
// a violation is a NUMERIC error. The checks are suppressed for infeasible
// results, which carry an all-zeros allocation by convention.
func NewAllocationResult(
	allocation [][]float64,
	utilities []float64,
	objectiveValue float64,
	status SolverStatus,
	solveTime time.Duration,
	metadata map[string]interface{},
) (*AllocationResult, error) {
	nAgents := len(allocation)
	if nAgents == 0 || len(allocation[0]) == 0 {
		return nil, shared.NewNumeric("allocation must be a non-empty matrix")
	}
	nGoods := len(allocation[0])

	if len(utilities) != nAgents {
		return nil, shared.NewNumeric(
			fmt.Sprintf("utilities length %d doesn't match n_agents=%d", len(utilities), nAgents))
	}

	if status != StatusInfeasible {
		for i, row := range allocation {
			if len(row) != nGoods {
				return nil, shared.NewNumeric(fmt.Sprintf("allocation row %d is ragged", i))
			}
			for j, x := range row {
				if math.IsNaN(x) || x < -AllocationTolerance {
					return nil, shared.NewNumeric("allocation contains negative values").
						WithDetails("agent", i).WithDetails("good", j).WithDetails("value", x)
				}
			}
		}
		for j := 0; j < nGoods; j++ {
			sum := 0.0
			for i := 0; i < nAgents; i++ {
				sum += allocation[i][j]
			}
			if math.Abs(sum-1.0) > ColumnSumTolerance {
				return nil, shared.NewNumeric("goods not fully allocated").
					WithDetails("good", j).WithDetails("column_sum", sum)
			}
		}
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &AllocationResult{
		Allocation:     allocation,
		Utilities:      utilities,
		ObjectiveValue: objectiveValue,
		SolverStatus:   status,
		SolveTime:      solveTime,
		Metadata:       metadata,
	}, nil
}

// NewInfeasibleResult builds the conventional infeasible value: all-zeros
// allocation and utilities, zero objective, and an explanatory error message
// in the metadata. Infeasibility is a value, not an exception.
func NewInfeasibleResult(nAgents, nGoods int, solveTime time.Duration, reason string) *AllocationResult {
	allocation := make([][]float64, nAgents)
	for i := range allocation {
		allocation[i] = make([]float64, nGoods)
	}
	return &AllocationResult{
		Allocation:     allocation,
		Utilities:      make([]float64, nAgents),
		ObjectiveValue: 0,
		SolverStatus:   StatusInfeasible,
		SolveTime:      solveTime,
		Metadata:       map[string]interface{}{"error": reason},
	}
}

// RealizedUtilities computes per-agent utilities of an allocation under a
// utility matrix. Shapes are assumed validated by the caller.
func RealizedUtilities(allocation, utilities [][]float64) []float64 {
	out := make([]float64, len(allocation))
	for i := range allocation {
		var total float64
		for j := range allocation[i] {
			total += allocation[i][j] * utilities[i][j]
		}
		out[i] = total
	}
	return out
}
