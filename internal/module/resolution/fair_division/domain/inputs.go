package domain

import (
	"fmt"
	"math"

	"fairdivisiondss/internal/shared"
)

// DefaultEpsilon is the positivity floor applied when none is given.
const DefaultEpsilon = 1e-6

// SolverInputs carries everything a solver needs for one allocation problem.
// It is constructed once (usually by the loader) and read by the solver;
// nothing mutates it afterwards.
type SolverInputs struct {
	// Utilities[i][j] is agent i's utility for one full unit of good j.
	Utilities [][]float64

	// Entitlements[i] is agent i's claim weight, strictly positive.
	Entitlements []float64

	// Restrictions[i][j] == false forbids agent i from receiving any
	// fraction of good j. Nil means no restrictions.
	Restrictions [][]bool

	// GoodValues[j] is the estimated value of good j, used only by the
	// value-budget variant of MaxMin. Nil when unused.
	GoodValues []float64

	// Budget caps sum_{i,j} GoodValues[j]*x[i,j]; active only when
	// GoodValues is present. Nil when unused.
	Budget *float64

	// Epsilon is the strict positivity floor on agent utilities.
	Epsilon float64
}

// NewSolverInputs builds inputs with the default epsilon. Optional fields are
// set directly on the returned value before the first Validate call.
func NewSolverInputs(utilities [][]float64, entitlements []float64) *SolverInputs {
	return &SolverInputs{
		Utilities:    utilities,
		Entitlements: entitlements,
		Epsilon:      DefaultEpsilon,
	}
}

// Dims returns (nAgents, nGoods).
func (in *SolverInputs) Dims() (int, int) {
	if len(in.Utilities) == 0 {
		return 0, 0
	}
	return len(in.Utilities), len(in.Utilities[0])
}

// Restricted reports whether agent i is forbidden from good j.
func (in *SolverInputs) Restricted(i, j int) bool {
	return in.Restrictions != nil && !in.Restrictions[i][j]
}

// ValidateInputs checks the utility matrix and entitlement vector shared by
// both solvers and returns (nAgents, nGoods).
func ValidateInputs(utilities [][]float64, entitlements []float64) (int, int, error) {
	if len(utilities) == 0 || len(utilities[0]) == 0 {
		return 0, 0, shared.NewInvalidInput("utilities must be a non-empty 2-D matrix")
	}

	nAgents := len(utilities)
	nGoods := len(utilities[0])

	for i, row := range utilities {
		if len(row) != nGoods {
			return 0, 0, shared.NewInvalidInput(
				fmt.Sprintf("utilities row %d has %d entries, expected %d", i, len(row), nGoods))
		}
		for j, u := range row {
			if math.IsNaN(u) {
				return 0, 0, shared.NewInvalidInput(
					fmt.Sprintf("utilities[%d][%d] is NaN", i, j))
			}
			if u < 0 {
				return 0, 0, shared.NewInvalidInput("utilities must be non-negative").
					WithDetails("agent", i).WithDetails("good", j)
			}
		}
	}

	if len(entitlements) != nAgents {
		return 0, 0, shared.NewInvalidInput(
			fmt.Sprintf("entitlements length %d doesn't match n_agents=%d", len(entitlements), nAgents))
	}
	for i, w := range entitlements {
		if math.IsNaN(w) {
			return 0, 0, shared.NewInvalidInput(fmt.Sprintf("entitlements[%d] is NaN", i))
		}
		if w <= 0 {
			return 0, 0, shared.NewInvalidInput("entitlements must be strictly positive").
				WithDetails("agent", i)
		}
	}

	return nAgents, nGoods, nil
}

// Validate checks every invariant of the input aggregate before any engine
// call. It never mutates the receiver.
func (in *SolverInputs) Validate() error {
	nAgents, nGoods, err := ValidateInputs(in.Utilities, in.Entitlements)
	if err != nil {
		return err
	}

	if in.Epsilon <= 0 {
		return shared.NewInvalidInput("epsilon must be positive")
	}

	if in.Restrictions != nil {
		if len(in.Restrictions) != nAgents {
			return shared.NewInvalidInput(
				fmt.Sprintf("restrictions have %d rows, expected %d", len(in.Restrictions), nAgents))
		}
		for i, row := range in.Restrictions {
			if len(row) != nGoods {
				return shared.NewInvalidInput(
					fmt.Sprintf("restrictions row %d has %d entries, expected %d", i, len(row), nGoods))
			}
		}
	}

	if in.GoodValues != nil {
		if len(in.GoodValues) != nGoods {
			return shared.NewInvalidInput(
				fmt.Sprintf("good values length %d doesn't match n_goods=%d", len(in.GoodValues), nGoods))
		}
		for j, v := range in.GoodValues {
			if math.IsNaN(v) || v < 0 {
				return shared.NewInvalidInput("good values must be non-negative").WithDetails("good", j)
			}
		}
	}

	if in.Budget != nil {
		if in.GoodValues == nil {
			return shared.NewInvalidInput("budget requires good values")
		}
		if math.IsNaN(*in.Budget) || *in.Budget < 0 {
			return shared.NewInvalidInput("budget must be non-negative")
		}
	}

	return nil
}
