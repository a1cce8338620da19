package maxmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver"
	"fairdivisiondss/internal/shared"
)

func TestSolve_Symmetric2x2(t *testing.T) {
	// Symmetric 2x2, equal weights: each agent takes the good it values at
	// 10, so both end at utility 10 and neither envies the other.
	in := domain.NewSolverInputs([][]float64{{10, 5}, {5, 10}}, []float64{1, 1})

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, result.SolverStatus)

	t.Logf("utilities: %v, objective: %.6f", result.Utilities, result.ObjectiveValue)

	assert.InDelta(t, result.Utilities[0], result.Utilities[1], 1e-4)
	assert.InDelta(t, 10.0, result.ObjectiveValue, 1e-6)
	assert.InDelta(t, 1.0, result.Allocation[0][0], 1e-6)
	assert.InDelta(t, 1.0, result.Allocation[1][1], 1e-6)
}

func TestSolve_SingleAgent(t *testing.T) {
	// Single agent 1x3: everything goes to the only agent.
	in := domain.NewSolverInputs([][]float64{{10, 5, 8}}, []float64{1})

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, result.SolverStatus)

	for j := 0; j < 3; j++ {
		assert.InDelta(t, 1.0, result.Allocation[0][j], 1e-6)
	}
	assert.InDelta(t, 23.0, result.Utilities[0], 1e-6)
	assert.InDelta(t, 23.0, result.ObjectiveValue, 1e-6)
}

func TestSolve_Weighted2x3(t *testing.T) {
	// Weighted 2x3: agent 0 carries weight 2, so its utility settles at
	// twice agent 1's.
	in := domain.NewSolverInputs([][]float64{{10, 5, 8}, {6, 9, 7}}, []float64{2, 1})

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, result.SolverStatus)

	t.Logf("utilities: %v, t*=%.6f", result.Utilities, result.ObjectiveValue)
	assert.InDelta(t, result.Utilities[0]/2, result.Utilities[1], 1e-4)

	normalized := result.Metadata["normalized_utilities"].([]float64)
	assert.InDelta(t, result.ObjectiveValue, normalized[0], 1e-6)
	assert.InDelta(t, result.ObjectiveValue, normalized[1], 1e-6)
}

func TestSolve_NegativeUtilityRejected(t *testing.T) {
	in := domain.NewSolverInputs([][]float64{{10, -5}, {5, 10}}, []float64{1, 1})

	_, err := Solve(in, solver.Options{})
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), "non-negative")
}

func TestSolve_ZeroUtilityAgentInfeasible(t *testing.T) {
	// An agent valuing every good at zero cannot clear the t >= epsilon
	// floor; the program is infeasible, reported as a value.
	in := domain.NewSolverInputs([][]float64{{0, 0}, {5, 10}}, []float64{1, 1})

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, result.SolverStatus)
	assert.Equal(t, []float64{0, 0}, result.Utilities)
	assert.NotEmpty(t, result.Metadata["error"])
	for i := range result.Allocation {
		for j := range result.Allocation[i] {
			assert.Zero(t, result.Allocation[i][j])
		}
	}
}

func TestSolve_Restrictions(t *testing.T) {
	// Agent 0 is barred from good 0; everything it gets must come from
	// good 1.
	in := domain.NewSolverInputs([][]float64{{10, 5}, {5, 10}}, []float64{1, 1})
	in.Restrictions = [][]bool{{false, true}, {true, true}}

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.NotEqual(t, domain.StatusInfeasible, result.SolverStatus)

	assert.LessOrEqual(t, result.Allocation[0][0], 1e-6)
	assert.InDelta(t, 1.0, result.Allocation[1][0], 1e-6)
}

func TestSolve_FullyRestrictedGoodInfeasible(t *testing.T) {
	in := domain.NewSolverInputs([][]float64{{10, 5}, {5, 10}}, []float64{1, 1})
	in.Restrictions = [][]bool{{false, true}, {false, true}}

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, result.SolverStatus)
	assert.Contains(t, result.Metadata["error"], "good 0")
}

func TestSolve_ValueBudgetVariant(t *testing.T) {
	// A generous budget leaves the egalitarian optimum untouched: with the
	// goods balance forcing full allocation, total consumed value is fixed
	// at sum(v).
	in := domain.NewSolverInputs([][]float64{{10, 5}, {5, 10}}, []float64{1, 1})
	in.GoodValues = []float64{100, 50}
	budget := 187.5 // sum(v) * (1 + 0.25)
	in.Budget = &budget

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, result.SolverStatus)
	assert.InDelta(t, 10.0, result.ObjectiveValue, 1e-6)
}

func TestSolve_ScaleInvariance(t *testing.T) {
	// Scaling utilities by c scales realized utilities by c and leaves the
	// allocation unchanged.
	base := [][]float64{{9, 2, 4}, {3, 8, 6}}
	scaled := make([][]float64, len(base))
	const c = 7.0
	for i := range base {
		scaled[i] = make([]float64, len(base[i]))
		for j := range base[i] {
			scaled[i][j] = base[i][j] * c
		}
	}

	first, err := Solve(domain.NewSolverInputs(base, []float64{1, 1}), solver.Options{})
	require.NoError(t, err)
	second, err := Solve(domain.NewSolverInputs(scaled, []float64{1, 1}), solver.Options{})
	require.NoError(t, err)

	for i := range first.Allocation {
		for j := range first.Allocation[i] {
			assert.InDelta(t, first.Allocation[i][j], second.Allocation[i][j], 1e-4)
		}
		assert.InDelta(t, first.Utilities[i]*c, second.Utilities[i], 1e-4)
	}
}

func TestSolve_Determinism(t *testing.T) {
	utilities := domain.GenerateRandomUtilities(4, 5, 0, 10, 7)
	entitlements := []float64{1, 2, 1, 3}

	first, err := Solve(domain.NewSolverInputs(utilities, entitlements), solver.Options{})
	require.NoError(t, err)
	second, err := Solve(domain.NewSolverInputs(utilities, entitlements), solver.Options{})
	require.NoError(t, err)

	for i := range first.Allocation {
		for j := range first.Allocation[i] {
			assert.InDelta(t, first.Allocation[i][j], second.Allocation[i][j], 1e-6)
		}
		assert.InDelta(t, first.Utilities[i], second.Utilities[i], 1e-6)
	}
}

func TestSolve_FeasibilityInvariants(t *testing.T) {
	utilities := domain.GenerateRandomUtilities(5, 6, 0.5, 10, 11)
	in := domain.NewSolverInputs(utilities, []float64{1, 1, 2, 3, 1})

	result, err := Solve(in, solver.Options{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, result.SolverStatus)

	nAgents, nGoods := in.Dims()
	for j := 0; j < nGoods; j++ {
		sum := 0.0
		for i := 0; i < nAgents; i++ {
			assert.GreaterOrEqual(t, result.Allocation[i][j], -1e-9)
			sum += result.Allocation[i][j]
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}

	// Utility consistency
	recomputed := domain.RealizedUtilities(result.Allocation, utilities)
	for i := range recomputed {
		assert.InDelta(t, recomputed[i], result.Utilities[i], 1e-9)
	}
}

func TestSolve_UnknownEngine(t *testing.T) {
	in := domain.NewSolverInputs([][]float64{{1}}, []float64{1})
	_, err := Solve(in, solver.Options{Engine: "cplex"})
	assert.Error(t, err)
}
