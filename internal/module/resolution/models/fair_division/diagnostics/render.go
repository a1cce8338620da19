package diagnostics

import (
	"fmt"
	"strings"

	"fairdivisiondss/internal/module/resolution/fair_division/domain"
)

const (
	ruleHeavy = "======================================================================"
	ruleLight = "----------------------------------------------------------------------"
	// Envious pairs listed before the remainder is summarized.
	maxListedPairs = 5
)

// RenderReport formats a fairness report as stable, human-readable text. The
// layout is fixed so golden-file comparisons hold across releases.
func RenderReport(r *domain.FairnessReport) string {
	var b strings.Builder

	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}

	line(ruleHeavy)
	line("FAIRNESS ANALYSIS REPORT")
	line(ruleHeavy)
	line("")
	line("WELFARE METRICS")
	line(ruleLight)
	line("  Utilities:         %s", formatVector(r.Utilities))
	line("  Total Utility:     %.4f", r.TotalUtility)
	line("  Nash Welfare:      %.4f", r.NashWelfare)
	line("  Min Utility:       %.4f", r.MinUtility)
	line("")
	line("PARETO EFFICIENCY")
	line(ruleLight)
	if r.IsParetoEfficient {
		line("  Status:            Efficient")
	} else {
		line("  Status:            Not verified")
	}
	line("  Note:              %s", r.ParetoNote)
	line("")
	line("ENVY ANALYSIS")
	line(ruleLight)
	line("  Envy-Free:         %s", yesNo(r.IsEnvyFree))
	line("  Max Envy:          %.4f", r.MaxEnvy)
	if len(r.EnviousPairs) > 0 {
		line("  Envious Pairs:")
		for idx, p := range r.EnviousPairs {
			if idx == maxListedPairs {
				line("    ... and %d more", len(r.EnviousPairs)-maxListedPairs)
				break
			}
			line("    Agent %d -> Agent %d: %.4f", p.Agent, p.Envied, p.Amount)
		}
	}
	line("")
	line("PROPORTIONALITY")
	line(ruleLight)
	line("  Proportional:      %s", yesNo(r.IsProportional))
	line("  Proportional Shares: %s", formatVector(r.ProportionalShares))
	line("  Gaps (U - share):  %s", formatVector(r.ProportionalityGaps))
	line("")
	line("SYMMETRY")
	line(ruleLight)
	line("  Symmetric Instance:   %s", yesNo(r.IsSymmetricInstance))
	line("  Symmetric Allocation: %s", yesNo(r.IsSymmetricAllocation))
	line("")
	line("SUMMARY")
	line(ruleLight)
	line("  Overall Score:     %s", r.Summary.OverallScore)
	line("  Envious Pairs:     %d", r.Summary.NumEnviousPairs)
	line("  Min Gap:           %.4f", r.Summary.MinProportionalityGap)
	line("  Gini:              %.4f", r.Summary.Gini)
	line(ruleHeavy)

	return b.String()
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
