// Package nash solves the Nash social welfare maximization problem: maximize
// the entitlement-weighted log welfare
//
//	sum_i w^_i * log(U_i(x)),   w^_i = w_i / sum_k w_k
//
// over fractional allocations with every good fully assigned and every agent
// held at or above the epsilon utility floor. The log form keeps the weighted
// geometric mean out of under/overflow territory and is concave in x, so the
// program is convex with a unique optimum for positive weights.
package nash

import (
	"fmt"
	"math"
	"time"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver"
	"fairdivisiondss/internal/module/resolution/models/fair_division/solver/nlp"
	"fairdivisiondss/internal/shared"

	"gonum.org/v1/gonum/floats"
)

// Solve computes the Nash welfare allocation. Invalid inputs return an
// INVALID_INPUT error, an engine breakdown returns SOLVER_FAILED, and a
// program with no feasible point (a fully restricted good, or an agent that
// cannot reach the epsilon floor) returns an infeasible result value.
func Solve(in *domain.SolverInputs, opts solver.Options) (*domain.AllocationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	nAgents, nGoods := in.Dims()
	start := time.Now()

	weights := make([]float64, nAgents)
	copy(weights, in.Entitlements)
	floats.Scale(1/floats.Sum(weights), weights)

	// Flat layout x[i*nGoods+j]; fixed marks restricted pairs.
	numVars := nAgents * nGoods
	var fixed []bool
	if in.Restrictions != nil {
		fixed = make([]bool, numVars)
		for i := 0; i < nAgents; i++ {
			for j := 0; j < nGoods; j++ {
				fixed[i*nGoods+j] = in.Restricted(i, j)
			}
		}
	}

	for j := 0; j < nGoods; j++ {
		allowed := 0
		for i := 0; i < nAgents; i++ {
			if fixed == nil || !fixed[i*nGoods+j] {
				allowed++
			}
		}
		if allowed == 0 {
			return domain.NewInfeasibleResult(nAgents, nGoods, time.Since(start),
				fmt.Sprintf("restrictions forbid every agent from good %d", j)), nil
		}
	}

	// An agent whose every permitted utility is zero can never reach the
	// epsilon floor, so the utility constraint set is empty.
	for i := 0; i < nAgents; i++ {
		reachable := 0.0
		for j := 0; j < nGoods; j++ {
			if fixed == nil || !fixed[i*nGoods+j] {
				reachable += in.Utilities[i][j]
			}
		}
		if reachable <= 0 {
			return domain.NewInfeasibleResult(nAgents, nGoods, time.Since(start),
				fmt.Sprintf("agent %d cannot reach the minimum utility %g", i, in.Epsilon)), nil
		}
	}

	epsilon := in.Epsilon
	utilitiesOf := func(x []float64) []float64 {
		agentUtilities := make([]float64, nAgents)
		for i := 0; i < nAgents; i++ {
			agentUtilities[i] = floats.Dot(in.Utilities[i], x[i*nGoods:(i+1)*nGoods])
		}
		return agentUtilities
	}

	problem := nlp.Problem{
		NumVars: numVars,
		Objective: func(x []float64) float64 {
			welfare := 0.0
			for i, u := range utilitiesOf(x) {
				welfare += weights[i] * math.Log(math.Max(u, epsilon))
			}
			return welfare
		},
		Gradient: func(grad, x []float64) {
			agentUtilities := utilitiesOf(x)
			for i := 0; i < nAgents; i++ {
				// d/dx[i][j] sum_k w^_k log U_k = w^_i * u[i][j] / U_i
				scale := weights[i] / math.Max(agentUtilities[i], epsilon)
				for j := 0; j < nGoods; j++ {
					grad[i*nGoods+j] = scale * in.Utilities[i][j]
				}
			}
		},
		Project: nlp.ColumnSimplexProjector(nAgents, nGoods, fixed),
	}

	// Uniform start over the agents allowed each good; the projection makes
	// the columns exact before the first gradient step.
	x0 := make([]float64, numVars)
	for i := range x0 {
		x0[i] = 1.0 / float64(nAgents)
	}

	engine := &nlp.ProjectedGradient{
		MaxIterations: opts.EffectiveMaxIterations(),
		TimeLimit:     opts.EffectiveTimeLimit(),
	}

	nlpResult, err := engine.Solve(problem, x0)
	if err != nil {
		return nil, shared.NewSolverFailed("nash engine failed").WithError(err)
	}
	solveTime := time.Since(start)

	allocation := make([][]float64, nAgents)
	for i := range allocation {
		allocation[i] = make([]float64, nGoods)
		copy(allocation[i], nlpResult.X[i*nGoods:(i+1)*nGoods])
	}
	utilities := domain.RealizedUtilities(allocation, in.Utilities)

	// The clamp in the objective masks an unreachable floor; surface it as
	// infeasibility rather than a biased optimum. Half the floor leaves room
	// for convergence error right at the constraint.
	for i, u := range utilities {
		if u < epsilon/2 {
			return domain.NewInfeasibleResult(nAgents, nGoods, solveTime,
				fmt.Sprintf("agent %d cannot reach the minimum utility %g", i, epsilon)), nil
		}
	}

	objectiveValue := 0.0
	for i, u := range utilities {
		objectiveValue += weights[i] * math.Log(math.Max(u, epsilon))
	}

	var status domain.SolverStatus
	switch nlpResult.Status {
	case nlp.Converged:
		status = domain.StatusOptimal
	default:
		status = domain.StatusFeasible
	}

	metadata := map[string]interface{}{
		"algorithm":        "nash_social_welfare",
		"engine":           engine.Name(),
		"engine_status":    nlpResult.Status.String(),
		"iterations":       nlpResult.Iterations,
		"log_nash_welfare": objectiveValue,
		"nash_product":     math.Exp(objectiveValue),
	}

	return domain.NewAllocationResult(allocation, utilities, objectiveValue, status, solveTime, metadata)
}
