// Package maxmin solves the weighted egalitarian allocation problem: maximize
// the minimum entitlement-normalized utility min_i U_i/w_i over fractional
// allocations of every good.
//
// The max-min objective is linearized with an auxiliary variable t:
//
//	maximize t
//	s.t.     sum_j u[i][j]*x[i][j] - w_i*t >= 0   for every agent i
//	         sum_i x[i][j] = 1                     for every good j
//	         x[i][j] = 0                           for every restricted pair
//	         t >= epsilon
//
// which a plain LP engine handles. The t >= epsilon floor is folded into the
// variables by the shift t = t' + epsilon, keeping every variable at the
// engine's natural >= 0 bound.
package maxmin

import (
	"fmt"
	"time"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver/lp"
)

// Solve computes the weighted egalitarian allocation. Invalid inputs return
// an INVALID_INPUT error; an unsolvable program returns an infeasible result
// value, not an error.
func Solve(in *domain.SolverInputs, opts solver.Options) (*domain.AllocationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	nAgents, nGoods := in.Dims()
	start := time.Now()

	// Restricted pairs are dropped from the program instead of pinned by
	// bounds; a column nobody may receive makes the program infeasible
	// before the engine ever runs.
	varIndex := make([][]int, nAgents)
	numFree := 0
	for i := range varIndex {
		varIndex[i] = make([]int, nGoods)
		for j := 0; j < nGoods; j++ {
			if in.Restricted(i, j) {
				varIndex[i][j] = -1
				continue
			}
			varIndex[i][j] = numFree
			numFree++
		}
	}
	for j := 0; j < nGoods; j++ {
		allowed := 0
		for i := 0; i < nAgents; i++ {
			if varIndex[i][j] >= 0 {
				allowed++
			}
		}
		if allowed == 0 {
			return domain.NewInfeasibleResult(nAgents, nGoods, time.Since(start),
				fmt.Sprintf("restrictions forbid every agent from good %d", j)), nil
		}
	}

	numVars := numFree + 1 // x variables plus the shifted minimum t'
	tIdx := numFree

	engine, err := lp.NewEngine(opts.Engine, numVars)
	if err != nil {
		return nil, err
	}
	defer engine.Close()
	engine.SetTimeLimit(opts.EffectiveTimeLimit())

	objective := make([]float64, numVars)
	objective[tIdx] = 1.0
	if err := engine.SetObjective(objective, true); err != nil {
		return nil, err
	}

	// Agent floors: sum_j u[i][j]*x[i][j] - w_i*t' >= w_i*epsilon
	for i := 0; i < nAgents; i++ {
		row := make([]float64, numVars)
		for j := 0; j < nGoods; j++ {
			if idx := varIndex[i][j]; idx >= 0 {
				row[idx] = in.Utilities[i][j]
			}
		}
		row[tIdx] = -in.Entitlements[i]
		if err := engine.AddConstraint(row, ">=", in.Entitlements[i]*in.Epsilon); err != nil {
			return nil, err
		}
	}

	// Goods balance: sum_i x[i][j] = 1
	for j := 0; j < nGoods; j++ {
		row := make([]float64, numVars)
		for i := 0; i < nAgents; i++ {
			if idx := varIndex[i][j]; idx >= 0 {
				row[idx] = 1.0
			}
		}
		if err := engine.AddConstraint(row, "=", 1.0); err != nil {
			return nil, err
		}
	}

	// Value budget: sum_{i,j} v[j]*x[i][j] <= B
	if in.GoodValues != nil && in.Budget != nil {
		row := make([]float64, numVars)
		for i := 0; i < nAgents; i++ {
			for j := 0; j < nGoods; j++ {
				if idx := varIndex[i][j]; idx >= 0 {
					row[idx] = in.GoodValues[j]
				}
			}
		}
		if err := engine.AddConstraint(row, "<=", *in.Budget); err != nil {
			return nil, err
		}
	}

	lpResult, err := engine.Solve()
	if err != nil {
		return nil, err
	}
	solveTime := time.Since(start)

	var status domain.SolverStatus
	switch lpResult.Status {
	case lp.LPOptimal:
		status = domain.StatusOptimal
	case lp.LPMaxIterations:
		status = domain.StatusFeasible
	default:
		reason := lpResult.Message
		if reason == "" {
			reason = "no feasible solution found (" + lpResult.Status.String() + ")"
		}
		return domain.NewInfeasibleResult(nAgents, nGoods, solveTime, reason), nil
	}

	allocation := make([][]float64, nAgents)
	for i := range allocation {
		allocation[i] = make([]float64, nGoods)
		for j := 0; j < nGoods; j++ {
			if idx := varIndex[i][j]; idx >= 0 {
				allocation[i][j] = lpResult.Solution[idx]
			}
		}
	}

	utilities := domain.RealizedUtilities(allocation, in.Utilities)
	objectiveValue := lpResult.Solution[tIdx] + in.Epsilon

	normalized := make([]float64, nAgents)
	for i := range normalized {
		normalized[i] = utilities[i] / in.Entitlements[i]
	}

	metadata := map[string]interface{}{
		"algorithm":              "max_min_egalitarian",
		"engine":                 lpResult.SolverName,
		"iterations":             lpResult.Iterations,
		"min_normalized_utility": objectiveValue,
		"normalized_utilities":   normalized,
	}
	if lpResult.Message != "" {
		metadata["engine_message"] = lpResult.Message
	}

	return domain.NewAllocationResult(allocation, utilities, objectiveValue, status, solveTime, metadata)
}
