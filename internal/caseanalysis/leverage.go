package caseanalysis

import (
	"fmt"
	"strings"
)

// DetectLeverage applies the leverage rules in fixed priority order; that
// order is also the output order and the tie-break for equal strength.
func DetectLeverage(tax *Taxonomy, pol PolicyAnalysis, clm ClaimAnalysis) []LeveragePoint {
	var points []LeveragePoint

	var supporting []string
	for _, clause := range pol.KeyClauses {
		if !containsString(pol.Exclusions, clause) {
			supporting = append(supporting, clause)
		}
	}
	if len(supporting) > 0 {
		term := 0.1 * float64(len(supporting))
		if term > 0.3 {
			term = 0.3
		}
		strength := clamp01(0.5 + term)
		for _, reason := range clm.DenialReasons {
			points = append(points, LeveragePoint{
				Type:        LeveragePolicyInterpretation,
				Description: fmt.Sprintf("The stated denial ground %q can be contested under the policy's %s language", reason, strings.Join(supporting, ", ")),
				Strength:    strength,
			})
		}
	}

	for _, cov := range pol.CoverageTypes {
		if containsString(pol.Exclusions, cov) {
			continue
		}
		if coverageReferenced(clm.DenialReasons, cov) {
			continue
		}
		points = append(points, LeveragePoint{
			Type:        LeverageCoverageGap,
			Description: fmt.Sprintf("The policy grants %s coverage that the carrier's position does not address", cov),
			Strength:    clamp01(0.4 + 0.1*pol.ExtractionConfidence),
		})
	}

	if clm.ExtractionConfidence >= 0.7 {
		points = append(points, LeveragePoint{
			Type:        LeverageDocumentationStrength,
			Description: "The claim record is well documented, with the loss facts, figures, and dates established in writing",
			Strength:    clamp01(clm.ExtractionConfidence),
		})
	}

	if clm.ClaimType == ClaimCollision || clm.ClaimType == ClaimSettlementOffer {
		points = append(points, LeveragePoint{
			Type:        LeverageMarketValueComparison,
			Description: "Independent market valuation data can be set against the carrier's figure",
			Strength:    0.45,
		})
	}

	if len(points) == 0 {
		points = append(points, LeveragePoint{
			Type:        LeverageProcedural,
			Description: "The carrier must document and justify its claim handling on request",
			Strength:    0.2,
		})
	}
	return points
}

// A coverage type counts as referenced when a denial reason tag names it.
func coverageReferenced(reasons []string, coverage string) bool {
	for _, r := range reasons {
		if strings.Contains(r, coverage) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
