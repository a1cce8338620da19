package domain

// EnviousPair records that Agent envies Envied by Amount.
type EnviousPair struct {
	Agent  int
	Envied int
	Amount float64
}

// FairnessSummary holds the high-level flags of a report.
type FairnessSummary struct {
	// OverallScore is a deterministic five-tier label.
	OverallScore string
	// NumEnviousPairs counts pairs with envy above tolerance.
	NumEnviousPairs int
	// MinProportionalityGap is min_i (U_i - share_i).
	MinProportionalityGap float64
	// Gini is the Gini coefficient of realized utilities.
	Gini float64
}

// FairnessReport is the full diagnostic derivation from an allocation,
// a utility matrix and entitlements. It holds no references back to the
// inputs; every field is an independent copy.
type FairnessReport struct {
	// Welfare metrics
	Utilities    []float64
	TotalUtility float64
	NashWelfare  float64
	MinUtility   float64

	// Pareto efficiency (heuristic)
	IsParetoEfficient bool
	ParetoNote        string

	// Envy analysis. EnvyMatrix[i][k] = max(0, U_i(bundle_k) - U_i),
	// zero on the diagonal.
	EnvyMatrix   [][]float64
	MaxEnvy      float64
	IsEnvyFree   bool
	EnviousPairs []EnviousPair

	// Proportionality
	ProportionalShares  []float64
	ProportionalityGaps []float64
	IsProportional      bool

	// Symmetry
	IsSymmetricInstance   bool
	IsSymmetricAllocation bool

	Summary FairnessSummary
}
