// Package diagnostics evaluates an allocation against the standard
// game-theoretic fairness and efficiency criteria: envy, proportionality,
// symmetry, EF1, a Pareto heuristic, welfare aggregates and the Gini
// coefficient. Every function is a pure derivation from the allocation,
// utility matrix and entitlements; diagnostics never fail on a well-formed
// allocation.
package diagnostics

import (
	"fmt"
	"math"
	"sort"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
	"fairdivisiondss/internal/shared"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the numerical comparison tolerance.
const DefaultTolerance = 1e-6

// nashFloor keeps the log of a zero utility finite in welfare reporting.
const nashFloor = 1e-10

// AnalyzeFairness computes the full fairness report in one pass. A
// non-positive tolerance selects the default.
func AnalyzeFairness(
	allocation [][]float64,
	utilities [][]float64,
	entitlements []float64,
	tolerance float64,
) (*domain.FairnessReport, error) {
	if err := checkShapes(allocation, utilities, entitlements); err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	realized := domain.RealizedUtilities(allocation, utilities)
	totalUtility := floats.Sum(realized)
	minUtility := floats.Min(realized)

	// Weighted geometric Nash welfare, floored away from log(0).
	weightSum := floats.Sum(entitlements)
	logNash := 0.0
	for i, u := range realized {
		logNash += (entitlements[i] / weightSum) * math.Log(math.Max(u, nashFloor))
	}
	nashWelfare := math.Exp(logNash)

	isPareto, paretoNote := checkParetoHeuristic(allocation, utilities, tolerance)

	envyMatrix, maxEnvy, isEnvyFree, enviousPairs := analyzeEnvy(allocation, utilities, realized, tolerance)

	proportionalShares := make([]float64, len(realized))
	proportionalityGaps := make([]float64, len(realized))
	isProportional := true
	minGap := math.Inf(1)
	for i := range realized {
		proportionalShares[i] = (entitlements[i] / weightSum) * totalUtility
		proportionalityGaps[i] = realized[i] - proportionalShares[i]
		if proportionalityGaps[i] < -tolerance {
			isProportional = false
		}
		if proportionalityGaps[i] < minGap {
			minGap = proportionalityGaps[i]
		}
	}

	isSymmetricInstance := checkSymmetricInstance(utilities, entitlements, tolerance)
	isSymmetricAllocation := checkSymmetricAllocation(realized, utilities, entitlements, tolerance)

	return &domain.FairnessReport{
		Utilities:             realized,
		TotalUtility:          totalUtility,
		NashWelfare:           nashWelfare,
		MinUtility:            minUtility,
		IsParetoEfficient:     isPareto,
		ParetoNote:            paretoNote,
		EnvyMatrix:            envyMatrix,
		MaxEnvy:               maxEnvy,
		IsEnvyFree:            isEnvyFree,
		EnviousPairs:          enviousPairs,
		ProportionalShares:    proportionalShares,
		ProportionalityGaps:   proportionalityGaps,
		IsProportional:        isProportional,
		IsSymmetricInstance:   isSymmetricInstance,
		IsSymmetricAllocation: isSymmetricAllocation,
		Summary: domain.FairnessSummary{
			OverallScore:          overallScore(isPareto, isEnvyFree, isProportional, maxEnvy),
			NumEnviousPairs:       len(enviousPairs),
			MinProportionalityGap: minGap,
			Gini:                  Gini(realized),
		},
	}, nil
}

func checkShapes(allocation, utilities [][]float64, entitlements []float64) error {
	if len(allocation) == 0 || len(allocation[0]) == 0 {
		return shared.NewInvalidInput("allocation must be a non-empty 2-D matrix")
	}
	nAgents := len(allocation)
	nGoods := len(allocation[0])
	if len(utilities) != nAgents {
		return shared.NewInvalidInput("allocation and utilities disagree on n_agents")
	}
	for i := 0; i < nAgents; i++ {
		if len(allocation[i]) != nGoods || len(utilities[i]) != nGoods {
			return shared.NewInvalidInput("allocation and utilities disagree on n_goods")
		}
	}
	if len(entitlements) != nAgents {
		return shared.NewInvalidInput("entitlements length doesn't match n_agents")
	}
	return nil
}

// ComputeEnvyMatrix returns the matrix whose [i][k] entry is how much agent i
// envies agent k's bundle: max(0, U_i(bundle_k) - U_i). The diagonal is zero.
func ComputeEnvyMatrix(allocation, utilities [][]float64) [][]float64 {
	realized := domain.RealizedUtilities(allocation, utilities)
	envy, _, _, _ := analyzeEnvy(allocation, utilities, realized, DefaultTolerance)
	return envy
}

func analyzeEnvy(
	allocation, utilities [][]float64,
	realized []float64,
	tolerance float64,
) ([][]float64, float64, bool, []domain.EnviousPair) {
	nAgents := len(realized)

	envyMatrix := make([][]float64, nAgents)
	for i := range envyMatrix {
		envyMatrix[i] = make([]float64, nAgents)
	}

	maxEnvy := 0.0
	pairs := make([]domain.EnviousPair, 0)

	for i := 0; i < nAgents; i++ {
		for k := 0; k < nAgents; k++ {
			if i == k {
				continue
			}
			utilityForBundle := floats.Dot(utilities[i], allocation[k])
			envy := utilityForBundle - realized[i]
			if envy > 0 {
				envyMatrix[i][k] = envy
			}
			if envyMatrix[i][k] > maxEnvy {
				maxEnvy = envyMatrix[i][k]
			}
			if envy > tolerance {
				pairs = append(pairs, domain.EnviousPair{Agent: i, Envied: k, Amount: envy})
			}
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].Amount > pairs[b].Amount })

	return envyMatrix, maxEnvy, maxEnvy <= tolerance, pairs
}

// checkParetoHeuristic looks for obvious inefficiencies. It is not a proof:
// the answer is "not efficient" only with a concrete witness (i, k, j) where
// agent i holds a fraction of good j it values at ~0 while agent k values it
// positively and holds less than all of it.
func checkParetoHeuristic(allocation, utilities [][]float64, tolerance float64) (bool, string) {
	nAgents := len(allocation)
	nGoods := len(allocation[0])

	for j := 0; j < nGoods; j++ {
		sum := 0.0
		for i := 0; i < nAgents; i++ {
			sum += allocation[i][j]
		}
		if math.Abs(sum-1.0) > tolerance {
			return false, fmt.Sprintf("good %d not fully allocated (column sum %.6f)", j, sum)
		}
	}

	for j := 0; j < nGoods; j++ {
		for i := 0; i < nAgents; i++ {
			if allocation[i][j] > tolerance && utilities[i][j] <= tolerance {
				for k := 0; k < nAgents; k++ {
					if k != i && utilities[k][j] > tolerance && allocation[k][j] < 1.0-tolerance {
						return false, fmt.Sprintf(
							"good %d allocated inefficiently (agent %d values it 0, agent %d values it positive)",
							j, i, k)
					}
				}
			}
		}
	}

	return true, "no obvious inefficiency detected (heuristic)"
}

func checkSymmetricInstance(utilities [][]float64, entitlements []float64, tolerance float64) bool {
	nAgents := len(utilities)
	for i := 1; i < nAgents; i++ {
		if !floats.EqualApprox(utilities[i], utilities[0], tolerance) {
			return false
		}
		if math.Abs(entitlements[i]-entitlements[0]) > tolerance {
			return false
		}
	}
	return true
}

func checkSymmetricAllocation(realized []float64, utilities [][]float64, entitlements []float64, tolerance float64) bool {
	nAgents := len(utilities)
	for i := 0; i < nAgents; i++ {
		for k := i + 1; k < nAgents; k++ {
			if !floats.EqualApprox(utilities[i], utilities[k], tolerance) {
				continue
			}
			if math.Abs(entitlements[i]-entitlements[k]) > tolerance {
				continue
			}
			if math.Abs(realized[i]-realized[k]) > tolerance {
				return false
			}
		}
	}
	return true
}

// overallScore is the deterministic five-tier label.
func overallScore(isPareto, isEnvyFree, isProportional bool, maxEnvy float64) string {
	switch {
	case isPareto && isEnvyFree && isProportional:
		return "Excellent (Pareto + EF + Proportional)"
	case isPareto && isEnvyFree:
		return "Very Good (Pareto + EF)"
	case isPareto && maxEnvy < 0.1:
		return "Good (Pareto + Low Envy)"
	case isPareto:
		return "Fair (Pareto Efficient)"
	case isEnvyFree:
		return "Fair (Envy-Free)"
	default:
		return "Limited (Some fairness issues)"
	}
}

// Gini computes the Gini coefficient of the utility vector: 0 is perfect
// equality. All-zero utilities report 0.
func Gini(utilities []float64) float64 {
	n := len(utilities)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, utilities)
	sort.Float64s(sorted)

	total := floats.Sum(sorted)
	if total == 0 {
		return 0
	}

	weighted := 0.0
	for i, u := range sorted {
		weighted += float64(i+1) * u
	}

	return (2*weighted)/(float64(n)*total) - float64(n+1)/float64(n)
}
