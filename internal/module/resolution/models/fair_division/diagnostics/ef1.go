package diagnostics

import (
	"fairdivisiondss/internal/module/resolution/fair_division/domain"

	"gonum.org/v1/gonum/floats"
)

// CheckEF1 reports whether the allocation is envy-free up to one good: for
// every envious pair (i, k) there is a single good whose removal from k's
// bundle brings i's valuation of the reduced bundle down to i's own utility,
// within tolerance. The test is mainly meaningful for discrete allocations;
// for divisible goods it is a coarse upper bound on envy structure.
func CheckEF1(allocation, utilities [][]float64, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	nAgents := len(allocation)
	if nAgents == 0 {
		return true
	}
	nGoods := len(allocation[0])
	realized := domain.RealizedUtilities(allocation, utilities)

	for i := 0; i < nAgents; i++ {
		for k := 0; k < nAgents; k++ {
			if i == k {
				continue
			}

			utilityForBundle := floats.Dot(utilities[i], allocation[k])
			if utilityForBundle-realized[i] <= tolerance {
				continue
			}

			// i envies k; try removing each good from k's bundle.
			satisfied := false
			for j := 0; j < nGoods; j++ {
				if allocation[k][j] <= tolerance {
					continue
				}
				reduced := utilityForBundle - utilities[i][j]*allocation[k][j]
				if reduced-realized[i] <= tolerance {
					satisfied = true
					break
				}
			}

			if !satisfied {
				return false
			}
		}
	}

	return true
}
