package nlp

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	defaultMaxIterations = 1000
	defaultTolerance     = 1e-9
	defaultInitialStep   = 1.0

	// Armijo sufficient-increase coefficient and smallest admissible step.
	armijoSigma = 1e-4
	minStep     = 1e-14
)

// ProjectedGradient is a deterministic first-order engine: gradient ascent
// with Armijo backtracking, every iterate projected back onto the feasible
// set. For a concave objective over a convex set it converges to the optimum;
// for the allocation programs the projection keeps the goods-balance
// equalities exact at every step.
type ProjectedGradient struct {
	// MaxIterations bounds the outer iterations. Zero means the default.
	MaxIterations int
	// TimeLimit bounds wall-clock time. Zero means no limit.
	TimeLimit time.Duration
	// Tolerance on the infinity norm of the projected step. Zero means the
	// default.
	Tolerance float64
	// InitialStep is the first trial step length each iteration. Zero means
	// the default.
	InitialStep float64
}

func (e *ProjectedGradient) Name() string { return "projected-gradient" }

// Solve maximizes p.Objective from x0. The returned point is always feasible;
// an error is returned only for malformed problems or a non-finite objective.
func (e *ProjectedGradient) Solve(p Problem, x0 []float64) (*Result, error) {
	if p.NumVars <= 0 || len(x0) != p.NumVars {
		return nil, errors.New("problem size and initial point disagree")
	}
	if p.Objective == nil || p.Gradient == nil || p.Project == nil {
		return nil, errors.New("problem must define objective, gradient and projection")
	}

	maxIter := e.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	tol := e.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	initialStep := e.InitialStep
	if initialStep <= 0 {
		initialStep = defaultInitialStep
	}

	var deadline time.Time
	if e.TimeLimit > 0 {
		deadline = time.Now().Add(e.TimeLimit)
	}

	x := make([]float64, p.NumVars)
	copy(x, x0)
	p.Project(x)

	fx := p.Objective(x)
	if math.IsNaN(fx) || math.IsInf(fx, 0) {
		return nil, errors.New("objective is not finite at the initial point")
	}

	grad := make([]float64, p.NumVars)
	cand := make([]float64, p.NumVars)
	dir := make([]float64, p.NumVars)

	result := &Result{X: x, Objective: fx, Status: IterationLimit}

	for it := 0; it < maxIter; it++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			result.Status = DeadlineExceeded
			result.Iterations = it
			return result, nil
		}

		p.Gradient(grad, x)

		step := initialStep
		accepted := false
		for step >= minStep {
			floats.AddScaledTo(cand, x, step, grad)
			p.Project(cand)
			floats.SubTo(dir, cand, x)
			moved := floats.Norm(dir, math.Inf(1))

			if step == initialStep && moved <= tol {
				// Fixed point of the projected-gradient map.
				result.Status = Converged
				result.Iterations = it
				return result, nil
			}

			fCand := p.Objective(cand)
			if math.IsNaN(fCand) {
				return nil, errors.New("objective is not finite during the line search")
			}
			if fCand >= fx+armijoSigma*floats.Dot(grad, dir) {
				copy(x, cand)
				fx = fCand
				accepted = true
				break
			}
			step *= 0.5
		}

		if !accepted {
			// No ascent step exists down to the minimum step length;
			// numerically stationary.
			result.Status = Converged
			result.Iterations = it + 1
			result.Objective = fx
			return result, nil
		}

		result.Iterations = it + 1
		result.Objective = fx
	}

	return result, nil
}
