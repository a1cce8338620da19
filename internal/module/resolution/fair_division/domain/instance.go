package domain

import (
	"math"
	"math/rand"
)

// GenerateRandomUtilities builds a random utility matrix for tests. The same
// seed always yields the same matrix.
func GenerateRandomUtilities(nAgents, nGoods int, low, high float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	utilities := make([][]float64, nAgents)
	for i := range utilities {
		utilities[i] = make([]float64, nGoods)
		for j := range utilities[i] {
			utilities[i][j] = low + rng.Float64()*(high-low)
		}
	}
	return utilities
}

// GenerateSymmetricUtilities replicates one utility vector for every agent,
// producing a symmetric instance.
func GenerateSymmetricUtilities(nAgents int, perAgent []float64) [][]float64 {
	utilities := make([][]float64, nAgents)
	for i := range utilities {
		row := make([]float64, len(perAgent))
		copy(row, perAgent)
		utilities[i] = row
	}
	return utilities
}

// NormalizeAllocation returns a copy whose columns each sum to 1 within
// tolerance: a column already within tolerance is left as is, any other
// column is rescaled to sum 1. A column summing to ~0 is redistributed
// equally. This is a presentational correction; solvers must not apply it
// before the AllocationResult invariant checks.
func NormalizeAllocation(allocation [][]float64, tolerance float64) [][]float64 {
	nAgents := len(allocation)
	if nAgents == 0 {
		return nil
	}
	nGoods := len(allocation[0])

	out := make([][]float64, nAgents)
	for i := range allocation {
		out[i] = make([]float64, nGoods)
		copy(out[i], allocation[i])
	}

	for j := 0; j < nGoods; j++ {
		sum := 0.0
		for i := 0; i < nAgents; i++ {
			sum += out[i][j]
		}
		if math.Abs(sum-1.0) <= tolerance {
			continue
		}
		if sum > tolerance {
			for i := 0; i < nAgents; i++ {
				out[i][j] /= sum
			}
		} else {
			for i := 0; i < nAgents; i++ {
				out[i][j] = 1.0 / float64(nAgents)
			}
		}
	}

	return out
}
