//go:build cgo && golp
// +build cgo,golp

package lp

import (
	"errors"
	"math"
	"time"

	"github.com/draffensperger/golp"
)

// GolpSolver wraps the golp library (lp_solve). The model is built lazily in
// Solve so the builder stays a plain value until the engine call.
type GolpSolver struct {
	numVars     int
	maximize    bool
	constraints []golpConstraint
	objective   []float64
	lowerBounds []float64
	upperBounds []float64
	timeLimit   time.Duration
}

type golpConstraint struct {
	coefficients []float64
	op           string
	rhs          float64
}

// NewGolpSolver creates a new golp-based LP solver
func NewGolpSolver(numVars int) (*GolpSolver, error) {
	lower := make([]float64, numVars)
	upper := make([]float64, numVars)
	for i := range upper {
		upper[i] = math.Inf(1)
	}

	return &GolpSolver{
		numVars:     numVars,
		constraints: make([]golpConstraint, 0),
		objective:   make([]float64, numVars),
		lowerBounds: lower,
		upperBounds: upper,
	}, nil
}

func (s *GolpSolver) GetName() string {
	return "golp-lp_solve"
}

func (s *GolpSolver) SetObjective(coefficients []float64, maximize bool) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	s.objective = make([]float64, len(coefficients))
	copy(s.objective, coefficients)
	s.maximize = maximize
	return nil
}

func (s *GolpSolver) AddConstraint(coefficients []float64, op string, rhs float64) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	if op != "<=" && op != ">=" && op != "=" {
		return errors.New("operator must be <=, >=, or =")
	}

	s.constraints = append(s.constraints, golpConstraint{
		coefficients: coefficients,
		op:           op,
		rhs:          rhs,
	})
	return nil
}

func (s *GolpSolver) SetBounds(varIndex int, lower, upper float64) error {
	if varIndex < 0 || varIndex >= s.numVars {
		return errors.New("variable index out of range")
	}
	s.lowerBounds[varIndex] = lower
	s.upperBounds[varIndex] = upper
	return nil
}

// SetTimeLimit records the limit. It is not passed to lp_solve: Solve runs
// without a time limit.
func (s *GolpSolver) SetTimeLimit(limit time.Duration) {
	s.timeLimit = limit
}

func (s *GolpSolver) Solve() (*LPResult, error) {
	result := &LPResult{
		Solution:   make([]float64, s.numVars),
		SolverName: s.GetName(),
	}

	lp := golp.NewLP(0, s.numVars)
	if lp == nil {
		return nil, errors.New("failed to create LP model")
	}

	lp.SetObjFn(s.objective)
	if s.maximize {
		lp.SetMaximize()
	}

	for _, con := range s.constraints {
		var conType golp.ConstraintType
		switch con.op {
		case "<=":
			conType = golp.LE
		case ">=":
			conType = golp.GE
		case "=":
			conType = golp.EQ
		}
		if err := lp.AddConstraint(con.coefficients, conType, con.rhs); err != nil {
			return nil, err
		}
	}

	for i := 0; i < s.numVars; i++ {
		upper := s.upperBounds[i]
		if math.IsInf(upper, 1) {
			upper = 1e30
		}
		lp.SetBounds(i, s.lowerBounds[i], upper)
	}

	lp.SetVerboseLevel(golp.NEUTRAL)

	solveResult := lp.Solve()

	switch solveResult {
	case golp.OPTIMAL:
		result.Status = LPOptimal
	case golp.INFEASIBLE:
		result.Status = LPInfeasible
		result.Message = "no feasible solution"
	case golp.UNBOUNDED:
		result.Status = LPUnbounded
	case golp.SUBOPTIMAL:
		result.Status = LPMaxIterations
	default:
		result.Status = LPError
		result.Message = "lp_solve returned an unclassifiable status"
	}

	if result.Status == LPOptimal || result.Status == LPMaxIterations {
		result.ObjectiveValue = lp.Objective()
		vars := lp.Variables()
		for i := 0; i < s.numVars && i < len(vars); i++ {
			result.Solution[i] = vars[i]
		}
	}

	return result, nil
}

func (s *GolpSolver) Close() {}

// CreateGolpSolver creates a golp solver (only available with CGO + golp tag)
func CreateGolpSolver(numVars int) (LPSolver, error) {
	return NewGolpSolver(numVars)
}
