//go:build !cgo || !golp
// +build !cgo !golp

package lp

import (
	"errors"
	"time"
)

// GolpSolver stub - unavailable without CGO and the golp build tag.
type GolpSolver struct{}

// NewGolpSolver returns an error when CGO is not available
func NewGolpSolver(numVars int) (*GolpSolver, error) {
	return nil, errors.New("golp solver requires CGO and the lp_solve library")
}

func (s *GolpSolver) GetName() string {
	return "golp-lp_solve (unavailable)"
}

func (s *GolpSolver) SetObjective(coefficients []float64, maximize bool) error {
	return errors.New("golp solver not available")
}

func (s *GolpSolver) AddConstraint(coefficients []float64, op string, rhs float64) error {
	return errors.New("golp solver not available")
}

func (s *GolpSolver) SetBounds(varIndex int, lower, upper float64) error {
	return errors.New("golp solver not available")
}

func (s *GolpSolver) SetTimeLimit(limit time.Duration) {}

func (s *GolpSolver) Solve() (*LPResult, error) {
	return nil, errors.New("golp solver not available")
}

func (s *GolpSolver) Close() {}

// CreateGolpSolver returns an error when CGO is not available
func CreateGolpSolver(numVars int) (LPSolver, error) {
	return nil, errors.New("golp solver requires CGO and lp_solve. Install with: brew install lp_solve (macOS) or apt-get install lp-solve (Ubuntu), then build with -tags golp")
}
