package lp

import (
	"errors"
	"math"
	"time"
)

// SimplexSolver is the default engine: a pure Go two-phase simplex. It is
// deterministic for a given program, which the allocation property tests
// rely on.
type SimplexSolver struct {
	c           []float64   // objective coefficients
	a           [][]float64 // constraint matrix
	b           []float64   // right-hand side
	ops         []string    // constraint operators
	lowerBounds []float64
	upperBounds []float64
	numVars     int
	maximize    bool
	maxIter     int
	tolerance   float64
	timeLimit   time.Duration
}

// NewSimplexSolver creates a simplex engine for numVars variables, all
// initially bounded below by 0 and unbounded above.
func NewSimplexSolver(numVars int) *SimplexSolver {
	lower := make([]float64, numVars)
	upper := make([]float64, numVars)
	for i := range upper {
		upper[i] = math.Inf(1)
	}

	return &SimplexSolver{
		c:           make([]float64, numVars),
		a:           make([][]float64, 0),
		b:           make([]float64, 0),
		ops:         make([]string, 0),
		lowerBounds: lower,
		upperBounds: upper,
		numVars:     numVars,
		maxIter:     5000,
		tolerance:   1e-9,
	}
}

func (s *SimplexSolver) GetName() string { return "purego-simplex" }

func (s *SimplexSolver) Close() {}

func (s *SimplexSolver) SetObjective(coefficients []float64, maximize bool) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	s.c = make([]float64, len(coefficients))
	copy(s.c, coefficients)
	s.maximize = maximize
	return nil
}

func (s *SimplexSolver) AddConstraint(coefficients []float64, op string, rhs float64) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	if op != "<=" && op != ">=" && op != "=" {
		return errors.New("operator must be <=, >=, or =")
	}

	row := make([]float64, len(coefficients))
	copy(row, coefficients)
	s.a = append(s.a, row)
	s.b = append(s.b, rhs)
	s.ops = append(s.ops, op)
	return nil
}

// SetBounds records bounds for one variable. In a program without constraints
// Solve sets each variable to the bound its objective favours. Otherwise the
// bounds are not part of the tableau: every variable is only held >= 0 while
// pivoting, and the solved point is clamped to [lower, upper] afterwards.
func (s *SimplexSolver) SetBounds(varIndex int, lower, upper float64) error {
	if varIndex < 0 || varIndex >= s.numVars {
		return errors.New("variable index out of range")
	}
	s.lowerBounds[varIndex] = lower
	s.upperBounds[varIndex] = upper
	return nil
}

func (s *SimplexSolver) SetTimeLimit(limit time.Duration) {
	s.timeLimit = limit
}

// Solve runs the two-phase simplex method.
func (s *SimplexSolver) Solve() (*LPResult, error) {
	result := &LPResult{
		Solution:   make([]float64, s.numVars),
		SolverName: s.GetName(),
	}

	if s.numVars == 0 {
		result.Status = LPOptimal
		return result, nil
	}

	var deadline time.Time
	if s.timeLimit > 0 {
		deadline = time.Now().Add(s.timeLimit)
	}

	solution, objValue, status, iterations, msg := s.solveStandardForm(deadline)

	result.Solution = solution
	result.ObjectiveValue = objValue
	result.Status = status
	result.Iterations = iterations
	result.Message = msg

	return result, nil
}

// solveStandardForm converts the program to standard form and pivots.
func (s *SimplexSolver) solveStandardForm(deadline time.Time) ([]float64, float64, LPStatus, int, string) {
	numConstraints := len(s.a)
	if numConstraints == 0 {
		// Bounds only
		solution := make([]float64, s.numVars)
		objValue := 0.0
		for i := 0; i < s.numVars; i++ {
			wantHigh := (s.maximize && s.c[i] > 0) || (!s.maximize && s.c[i] < 0)
			if wantHigh && !math.IsInf(s.upperBounds[i], 1) {
				solution[i] = s.upperBounds[i]
			} else {
				solution[i] = s.lowerBounds[i]
			}
			objValue += s.c[i] * solution[i]
		}
		return solution, objValue, LPOptimal, 0, ""
	}

	// Count slack/surplus/artificial columns
	numSlack := 0
	numArtificial := 0
	for _, op := range s.ops {
		switch op {
		case "<=":
			numSlack++
		case ">=":
			numSlack++
			numArtificial++
		case "=":
			numArtificial++
		}
	}

	totalVars := s.numVars + numSlack + numArtificial

	tableau := make([][]float64, numConstraints+1)
	for i := range tableau {
		tableau[i] = make([]float64, totalVars+1)
	}

	slackIdx := s.numVars
	artificialIdx := s.numVars + numSlack
	basicVars := make([]int, numConstraints)

	for i := 0; i < numConstraints; i++ {
		for j := 0; j < s.numVars; j++ {
			tableau[i][j] = s.a[i][j]
		}

		rhs := s.b[i]

		switch s.ops[i] {
		case "<=":
			tableau[i][slackIdx] = 1
			basicVars[i] = slackIdx
			slackIdx++
		case ">=":
			tableau[i][slackIdx] = -1
			slackIdx++
			tableau[i][artificialIdx] = 1
			basicVars[i] = artificialIdx
			artificialIdx++
		case "=":
			tableau[i][artificialIdx] = 1
			basicVars[i] = artificialIdx
			artificialIdx++
		}

		if rhs < 0 {
			for j := 0; j <= totalVars; j++ {
				tableau[i][j] = -tableau[i][j]
			}
			rhs = -rhs
		}
		tableau[i][totalVars] = rhs
	}

	iterations := 0

	// Phase 1: drive the artificial variables to zero
	if numArtificial > 0 {
		for j := 0; j < totalVars; j++ {
			tableau[numConstraints][j] = 0
		}
		for j := s.numVars + numSlack; j < totalVars; j++ {
			tableau[numConstraints][j] = 1
		}
		for i := 0; i < numConstraints; i++ {
			if basicVars[i] >= s.numVars+numSlack {
				for j := 0; j <= totalVars; j++ {
					tableau[numConstraints][j] -= tableau[i][j]
				}
			}
		}

		var status LPStatus
		status, iterations = s.pivot(tableau, basicVars, totalVars, totalVars, numConstraints, deadline)
		if status != LPOptimal {
			if status == LPMaxIterations {
				// No feasible basis was reached; nothing usable to return.
				return make([]float64, s.numVars), 0, LPError, iterations, "iteration or time budget exhausted before a feasible basis was found"
			}
			return make([]float64, s.numVars), 0, status, iterations, ""
		}

		if math.Abs(tableau[numConstraints][totalVars]) > s.tolerance {
			return make([]float64, s.numVars), 0, LPInfeasible, iterations, "no feasible solution"
		}
	}

	// Phase 2: optimize the original objective. Artificial columns are barred
	// from re-entering the basis.
	for j := 0; j < s.numVars; j++ {
		if s.maximize {
			tableau[numConstraints][j] = -s.c[j]
		} else {
			tableau[numConstraints][j] = s.c[j]
		}
	}
	for j := s.numVars; j <= totalVars; j++ {
		tableau[numConstraints][j] = 0
	}
	for i := 0; i < numConstraints; i++ {
		if basicVars[i] < s.numVars {
			coef := tableau[numConstraints][basicVars[i]]
			if coef != 0 {
				for j := 0; j <= totalVars; j++ {
					tableau[numConstraints][j] -= coef * tableau[i][j]
				}
			}
		}
	}

	status, iter2 := s.pivot(tableau, basicVars, s.numVars+numSlack, totalVars, numConstraints, deadline)
	iterations += iter2

	solution := make([]float64, s.numVars)
	for i := 0; i < numConstraints; i++ {
		if basicVars[i] < s.numVars {
			solution[basicVars[i]] = tableau[i][totalVars]
		}
	}

	for i := 0; i < s.numVars; i++ {
		solution[i] = math.Max(s.lowerBounds[i], solution[i])
		if !math.IsInf(s.upperBounds[i], 1) {
			solution[i] = math.Min(s.upperBounds[i], solution[i])
		}
	}

	objValue := -tableau[numConstraints][totalVars]
	if s.maximize {
		objValue = -objValue
	}

	msg := ""
	if status == LPMaxIterations {
		msg = "iteration or time budget exhausted; returning best feasible point"
	}
	return solution, objValue, status, iterations, msg
}

// pivot runs simplex iterations. Columns at index >= enterLimit never enter
// the basis, which keeps phase-1 artificials out during phase 2.
func (s *SimplexSolver) pivot(tableau [][]float64, basicVars []int, enterLimit, totalVars, numConstraints int, deadline time.Time) (LPStatus, int) {
	iterations := 0

	for iterations < s.maxIter {
		if !deadline.IsZero() && iterations%32 == 0 && time.Now().After(deadline) {
			return LPMaxIterations, iterations
		}
		iterations++

		// Entering variable: most negative reduced cost
		enterCol := -1
		minCoef := -s.tolerance
		for j := 0; j < enterLimit; j++ {
			if tableau[numConstraints][j] < minCoef {
				minCoef = tableau[numConstraints][j]
				enterCol = j
			}
		}

		if enterCol == -1 {
			return LPOptimal, iterations
		}

		// Leaving variable: minimum ratio test
		leaveRow := -1
		minRatio := math.Inf(1)
		for i := 0; i < numConstraints; i++ {
			if tableau[i][enterCol] > s.tolerance {
				ratio := tableau[i][totalVars] / tableau[i][enterCol]
				if ratio < minRatio {
					minRatio = ratio
					leaveRow = i
				}
			}
		}

		if leaveRow == -1 {
			return LPUnbounded, iterations
		}

		pivot := tableau[leaveRow][enterCol]
		for j := 0; j <= totalVars; j++ {
			tableau[leaveRow][j] /= pivot
		}

		for i := 0; i <= numConstraints; i++ {
			if i != leaveRow {
				factor := tableau[i][enterCol]
				if factor != 0 {
					for j := 0; j <= totalVars; j++ {
						tableau[i][j] -= factor * tableau[leaveRow][j]
					}
				}
			}
		}

		basicVars[leaveRow] = enterCol
	}

	return LPMaxIterations, iterations
}
