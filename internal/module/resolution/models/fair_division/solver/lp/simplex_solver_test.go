package lp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplexSolver_SimpleMaximize(t *testing.T) {
	// maximize 3x + 2y
	// s.t. x + y <= 4
	//      x + 3y <= 6
	// Optimum at x=4, y=0, objective 12
	s := NewSimplexSolver(2)
	require.NoError(t, s.SetObjective([]float64{3, 2}, true))
	require.NoError(t, s.AddConstraint([]float64{1, 1}, "<=", 4))
	require.NoError(t, s.AddConstraint([]float64{1, 3}, "<=", 6))

	result, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, LPOptimal, result.Status)
	assert.InDelta(t, 12.0, result.ObjectiveValue, 1e-9)
	assert.InDelta(t, 4.0, result.Solution[0], 1e-9)
	assert.InDelta(t, 0.0, result.Solution[1], 1e-9)
}

func TestSimplexSolver_EqualityAndGE(t *testing.T) {
	// maximize x + y
	// s.t. x + y + z = 1
	//      x >= 0.2
	// Optimum: z=0, x+y=1, objective 1
	s := NewSimplexSolver(3)
	require.NoError(t, s.SetObjective([]float64{1, 1, 0}, true))
	require.NoError(t, s.AddConstraint([]float64{1, 1, 1}, "=", 1))
	require.NoError(t, s.AddConstraint([]float64{1, 0, 0}, ">=", 0.2))

	result, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, LPOptimal, result.Status)
	assert.InDelta(t, 1.0, result.ObjectiveValue, 1e-9)
	assert.GreaterOrEqual(t, result.Solution[0], 0.2-1e-9)
	assert.InDelta(t, 0.0, result.Solution[2], 1e-9)
}

func TestSimplexSolver_Minimize(t *testing.T) {
	// minimize 2x + 3y
	// s.t. x + y >= 2
	// Optimum at x=2, y=0, objective 4
	s := NewSimplexSolver(2)
	require.NoError(t, s.SetObjective([]float64{2, 3}, false))
	require.NoError(t, s.AddConstraint([]float64{1, 1}, ">=", 2))

	result, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, LPOptimal, result.Status)
	assert.InDelta(t, 4.0, result.ObjectiveValue, 1e-9)
	assert.InDelta(t, 2.0, result.Solution[0], 1e-9)
}

func TestSimplexSolver_Infeasible(t *testing.T) {
	// x <= 1 and x >= 2 cannot hold together
	s := NewSimplexSolver(1)
	require.NoError(t, s.SetObjective([]float64{1}, true))
	require.NoError(t, s.AddConstraint([]float64{1}, "<=", 1))
	require.NoError(t, s.AddConstraint([]float64{1}, ">=", 2))

	result, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, LPInfeasible, result.Status)
}

func TestSimplexSolver_Unbounded(t *testing.T) {
	// maximize x with only x >= 1
	s := NewSimplexSolver(1)
	require.NoError(t, s.SetObjective([]float64{1}, true))
	require.NoError(t, s.AddConstraint([]float64{1}, ">=", 1))

	result, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, LPUnbounded, result.Status)
}

func TestSimplexSolver_Deterministic(t *testing.T) {
	build := func() *SimplexSolver {
		s := NewSimplexSolver(3)
		_ = s.SetObjective([]float64{5, 4, 3}, true)
		_ = s.AddConstraint([]float64{2, 3, 1}, "<=", 5)
		_ = s.AddConstraint([]float64{4, 1, 2}, "<=", 11)
		_ = s.AddConstraint([]float64{3, 4, 2}, "<=", 8)
		return s
	}

	first, err := build().Solve()
	require.NoError(t, err)
	second, err := build().Solve()
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Solution, second.Solution)
	assert.Equal(t, first.ObjectiveValue, second.ObjectiveValue)

	// Known optimum of this classic instance: x=(2,0,1), objective 13
	assert.InDelta(t, 13.0, first.ObjectiveValue, 1e-9)
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine("", 4)
	require.NoError(t, err)
	assert.Equal(t, "purego-simplex", engine.GetName())

	engine, err = NewEngine("simplex", 4)
	require.NoError(t, err)
	assert.NotNil(t, engine)

	_, err = NewEngine("cplex", 4)
	assert.Error(t, err)
}

func TestLPStatus_String(t *testing.T) {
	assert.Equal(t, "Optimal", LPOptimal.String())
	assert.Equal(t, "Infeasible", LPInfeasible.String())
	assert.Equal(t, "Unbounded", LPUnbounded.String())
	assert.Equal(t, "MaxIterations", LPMaxIterations.String())
	assert.Equal(t, "Error", LPError.String())
}
