package caseanalysis

import (
	"fmt"
	"strings"
	"time"
)

// BuildCaseReport renders the analysis as markdown for human review and for
// the PDF renderer. All content derives from the analysis itself, so the
// report is as reproducible as the analysis it describes.
func BuildCaseReport(a CaseAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Claim Negotiation Analysis\n\n")
	fmt.Fprintf(&b, "- Case ID: %s\n", a.CaseID)
	if a.PolicyNumber != "" {
		fmt.Fprintf(&b, "- Policy: #%s\n", a.PolicyNumber)
	}
	fmt.Fprintf(&b, "- Claim type: `%s`\n", a.ClaimAnalysis.ClaimType)
	fmt.Fprintf(&b, "- Analyzed: %s\n", a.Metadata.CompletedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Mode: %s\n\n", a.Metadata.Mode)

	if a.Metadata.Mode == ModeDegraded {
		fmt.Fprintf(&b, "> DEGRADED: neither document produced extractable signal. The recommendation below rests on defaults; treat it as a starting point only.\n\n")
	}

	fmt.Fprintf(&b, "## Policy Extraction\n\n")
	fmt.Fprintf(&b, "- Coverage types: %s\n", listOrDash(a.PolicyAnalysis.CoverageTypes))
	fmt.Fprintf(&b, "- Exclusions: %s\n", listOrDash(a.PolicyAnalysis.Exclusions))
	fmt.Fprintf(&b, "- Key clauses: %s\n", listOrDash(a.PolicyAnalysis.KeyClauses))
	fmt.Fprintf(&b, "- Extraction confidence: %.2f\n\n", a.PolicyAnalysis.ExtractionConfidence)

	fmt.Fprintf(&b, "## Claim Extraction\n\n")
	if a.ClaimAnalysis.DamagesClaimed != nil {
		fmt.Fprintf(&b, "- Damages claimed: %s\n", formatUSD(*a.ClaimAnalysis.DamagesClaimed))
	} else {
		fmt.Fprintf(&b, "- Damages claimed: not established\n")
	}
	if a.ClaimAnalysis.IncidentDate != nil {
		fmt.Fprintf(&b, "- Incident date: %s\n", a.ClaimAnalysis.IncidentDate.Format("2006-01-02"))
	} else {
		fmt.Fprintf(&b, "- Incident date: not documented\n")
	}
	fmt.Fprintf(&b, "- Denial reasons: %s\n", listOrDash(a.ClaimAnalysis.DenialReasons))
	fmt.Fprintf(&b, "- Extraction confidence: %.2f\n\n", a.ClaimAnalysis.ExtractionConfidence)

	fmt.Fprintf(&b, "## Leverage Points\n\n")
	fmt.Fprintf(&b, "| # | Type | Strength | Description |\n")
	fmt.Fprintf(&b, "|---|------|----------|-------------|\n")
	for i, p := range a.LeveragePoints {
		fmt.Fprintf(&b, "| %d | `%s` | %.2f | %s |\n", i+1, p.Type, p.Strength, reportCell(p.Description))
	}
	fmt.Fprintf(&b, "\n## Recommended Strategy\n\n")
	fmt.Fprintf(&b, "- Strategy: **%s** (`%s`)\n", a.RecommendedStrategy.Name, a.RecommendedStrategy.Approach)
	fmt.Fprintf(&b, "- Strategy score: %.3f\n", a.StrategyScore)
	fmt.Fprintf(&b, "- Success probability: %.3f\n\n", a.SuccessProbability)
	if len(a.RecommendedStrategy.RecommendedActions) > 0 {
		fmt.Fprintf(&b, "Recommended actions:\n\n")
		for _, act := range a.RecommendedStrategy.RecommendedActions {
			fmt.Fprintf(&b, "- %s\n", act)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Negotiation Plan\n\n")
	fmt.Fprintf(&b, "%d rounds over an estimated %d days.\n\n", a.NegotiationPlan.TotalRounds, a.NegotiationPlan.EstimatedDurationDays)
	for _, r := range a.NegotiationPlan.Rounds {
		fmt.Fprintf(&b, "### Round %d: %s\n\n", r.Round, r.Objective)
		for _, act := range r.KeyActions {
			fmt.Fprintf(&b, "- %s\n", act)
		}
		fmt.Fprintf(&b, "\nExpected outcome: %s (about %d days)\n\n", r.ExpectedOutcome, r.TimelineDays)
	}

	fmt.Fprintf(&b, "## Estimated Payout\n\n")
	if a.EstimatedPayoutRange.Expected > 0 {
		fmt.Fprintf(&b, "- Minimum: %s\n", formatUSD(a.EstimatedPayoutRange.Minimum))
		fmt.Fprintf(&b, "- Expected: %s\n", formatUSD(a.EstimatedPayoutRange.Expected))
		fmt.Fprintf(&b, "- Maximum: %s\n", formatUSD(a.EstimatedPayoutRange.Maximum))
		fmt.Fprintf(&b, "- Confidence: %.2f\n\n", a.EstimatedPayoutRange.Confidence)
	} else {
		fmt.Fprintf(&b, "No damages figure is established, so no payout range is computed. The letter requests a full reassessment instead.\n\n")
	}

	fmt.Fprintf(&b, "## Timeline Estimate\n\n")
	fmt.Fprintf(&b, "- Initial response: %d days\n", a.TimelineEstimate.InitialResponseDays)
	fmt.Fprintf(&b, "- Negotiation rounds: %d\n", a.TimelineEstimate.NegotiationRounds)
	fmt.Fprintf(&b, "- Total estimated: %d days\n", a.TimelineEstimate.TotalEstimatedDays)
	fmt.Fprintf(&b, "- Maximum: %d days\n\n", a.TimelineEstimate.MaximumTimelineDays)

	if len(a.StrengthFactors) > 0 {
		fmt.Fprintf(&b, "## Strengths\n\n")
		for _, f := range a.StrengthFactors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		fmt.Fprintf(&b, "\n")
	}
	if len(a.RiskFactors) > 0 {
		fmt.Fprintf(&b, "## Risks\n\n")
		for _, f := range a.RiskFactors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		fmt.Fprintf(&b, "\n")
	}
	return b.String()
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "none found"
	}
	return strings.Join(items, ", ")
}

func reportCell(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	return strings.ReplaceAll(s, "|", "\\|")
}
