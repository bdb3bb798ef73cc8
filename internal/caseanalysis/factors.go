package caseanalysis

import (
	"fmt"
	"strings"
)

func riskFactors(pol PolicyAnalysis, clm ClaimAnalysis) []string {
	var factors []string
	if pol.ExtractionConfidence < 0.5 {
		factors = append(factors, "Policy documentation is incomplete or carries little extractable signal")
	}
	if len(pol.Exclusions) > 0 {
		factors = append(factors, fmt.Sprintf("Policy lists exclusions the carrier may invoke: %s", strings.Join(pol.Exclusions, ", ")))
	}
	if len(clm.DenialReasons) > 0 {
		factors = append(factors, "Claim has already been denied, so the burden of rebuttal sits with the claimant")
	}
	if clm.DamagesClaimed == nil {
		factors = append(factors, "No damages figure is established in the claim record")
	}
	if clm.IncidentDate == nil {
		factors = append(factors, "Incident date is not documented")
	}
	return factors
}

func strengthFactors(pol PolicyAnalysis, clm ClaimAnalysis) []string {
	var factors []string
	if len(pol.CoverageTypes) > 0 {
		factors = append(factors, fmt.Sprintf("Policy affirmatively grants coverage: %s", strings.Join(pol.CoverageTypes, ", ")))
	}
	if len(pol.KeyClauses) > 0 {
		factors = append(factors, "Policy clause language is available to cite")
	}
	if clm.ExtractionConfidence >= 0.7 {
		factors = append(factors, "Claim documentation is thorough and internally consistent")
	}
	if clm.DamagesClaimed != nil {
		factors = append(factors, "Damages figure is documented")
	}
	if clm.IncidentDate != nil {
		factors = append(factors, "Incident date is documented")
	}
	return factors
}
