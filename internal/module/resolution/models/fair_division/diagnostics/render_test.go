package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReport_Golden(t *testing.T) {
	report, err := AnalyzeFairness(
		[][]float64{{1, 1}, {0, 0}},
		[][]float64{{10, 5}, {5, 10}},
		[]float64{1, 1},
		0,
	)
	require.NoError(t, err)

	heavy := strings.Repeat("=", 70)
	light := strings.Repeat("-", 70)
	expected := strings.Join([]string{
		heavy,
		"FAIRNESS ANALYSIS REPORT",
		heavy,
		"",
		"WELFARE METRICS",
		light,
		"  Utilities:         [15.0000 0.0000]",
		"  Total Utility:     15.0000",
		"  Nash Welfare:      0.0000",
		"  Min Utility:       0.0000",
		"",
		"PARETO EFFICIENCY",
		light,
		"  Status:            Efficient",
		"  Note:              no obvious inefficiency detected (heuristic)",
		"",
		"ENVY ANALYSIS",
		light,
		"  Envy-Free:         No",
		"  Max Envy:          15.0000",
		"  Envious Pairs:",
		"    Agent 1 -> Agent 0: 15.0000",
		"",
		"PROPORTIONALITY",
		light,
		"  Proportional:      No",
		"  Proportional Shares: [7.5000 7.5000]",
		"  Gaps (U - share):  [7.5000 -7.5000]",
		"",
		"SYMMETRY",
		light,
		"  Symmetric Instance:   No",
		"  Symmetric Allocation: Yes",
		"",
		"SUMMARY",
		light,
		"  Overall Score:     Fair (Pareto Efficient)",
		"  Envious Pairs:     1",
		"  Min Gap:           -7.5000",
		"  Gini:              0.5000",
		heavy,
		"",
	}, "\n")

	assert.Equal(t, expected, RenderReport(report))
}

func TestRenderReport_TruncatesEnviousPairs(t *testing.T) {
	// Seven agents, one hoarding everything: six envious pairs, only five
	// listed.
	nAgents := 7
	allocation := make([][]float64, nAgents)
	utilities := make([][]float64, nAgents)
	entitlements := make([]float64, nAgents)
	for i := range allocation {
		allocation[i] = []float64{0}
		utilities[i] = []float64{10}
		entitlements[i] = 1
	}
	allocation[0][0] = 1

	report, err := AnalyzeFairness(allocation, utilities, entitlements, 0)
	require.NoError(t, err)
	require.Len(t, report.EnviousPairs, 6)

	text := RenderReport(report)
	assert.Contains(t, text, "... and 1 more")
}
