package caseanalysis

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// A settlement counts as a win for base-rate purposes when it beat the
// initial offer by more than this factor.
const settlementImprovementFactor = 1.1

type HistoricalCase struct {
	PolicyClauses     []string `json:"policy_clauses"`
	IncidentType      string   `json:"incident_type"`
	InitialOffer      float64  `json:"initial_offer"`
	FinalSettlement   float64  `json:"final_settlement"`
	StrategyUsed      string   `json:"strategy_used"`
	SuccessFactors    []string `json:"success_factors"`
	TimelineDays      int      `json:"timeline_days"`
	AdjusterProfile   string   `json:"adjuster_profile"`
	NegotiationRounds int      `json:"negotiation_rounds"`
}

// LoadCalibrationFile reads a JSON file mapping incident-type categories to
// ordered lists of historical records and flattens it in category order.
func LoadCalibrationFile(path string) ([]HistoricalCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}
	var byIncident map[string][]HistoricalCase
	if err := json.Unmarshal(raw, &byIncident); err != nil {
		return nil, fmt.Errorf("parse calibration file: %w", err)
	}
	incidents := make([]string, 0, len(byIncident))
	for k := range byIncident {
		incidents = append(incidents, k)
	}
	sort.Strings(incidents)
	var records []HistoricalCase
	for _, incident := range incidents {
		if strings.TrimSpace(incident) == "" {
			return nil, fmt.Errorf("calibration file: empty incident type key")
		}
		for i, r := range byIncident[incident] {
			if r.IncidentType == "" {
				r.IncidentType = incident
			}
			if strings.TrimSpace(r.StrategyUsed) == "" {
				return nil, fmt.Errorf("calibration file: %s[%d]: strategy_used is required", incident, i)
			}
			if r.InitialOffer <= 0 {
				return nil, fmt.Errorf("calibration file: %s[%d]: initial_offer must be positive", incident, i)
			}
			records = append(records, r)
		}
	}
	return records, nil
}

func computeBaseRates(records []HistoricalCase) map[BaseRateKey]float64 {
	wins := map[BaseRateKey]int{}
	totals := map[BaseRateKey]int{}
	for _, r := range records {
		k := BaseRateKey{IncidentType: r.IncidentType, Strategy: r.StrategyUsed}
		totals[k]++
		if r.FinalSettlement > r.InitialOffer*settlementImprovementFactor {
			wins[k]++
		}
	}
	rates := make(map[BaseRateKey]float64, len(totals))
	for k, n := range totals {
		rates[k] = float64(wins[k]) / float64(n)
	}
	return rates
}

func defaultCalibration() []HistoricalCase {
	return []HistoricalCase{
		{PolicyClauses: []string{"insuring_agreement", "deductible"}, IncidentType: "collision", InitialOffer: 4200, FinalSettlement: 6300, StrategyUsed: "Market Value Recalculation", SuccessFactors: []string{"independent comparables", "itemized repair estimates"}, TimelineDays: 34, AdjusterProfile: "by_the_book", NegotiationRounds: 3},
		{PolicyClauses: []string{"policy_limits", "appraisal"}, IncidentType: "collision", InitialOffer: 8500, FinalSettlement: 9100, StrategyUsed: "Market Value Recalculation", SuccessFactors: []string{"appraisal demand"}, TimelineDays: 52, AdjusterProfile: "adversarial", NegotiationRounds: 4},
		{PolicyClauses: []string{"insuring_agreement"}, IncidentType: "collision", InitialOffer: 3100, FinalSettlement: 5000, StrategyUsed: "Market Value Recalculation", SuccessFactors: []string{"local comparables", "persistence"}, TimelineDays: 41, AdjusterProfile: "cooperative", NegotiationRounds: 3},
		{PolicyClauses: []string{"insuring_agreement", "policy_limits"}, IncidentType: "collision", InitialOffer: 5200, FinalSettlement: 7400, StrategyUsed: "Policy Language Challenge", SuccessFactors: []string{"exclusion misapplied"}, TimelineDays: 38, AdjusterProfile: "adversarial", NegotiationRounds: 2},
		{PolicyClauses: []string{"deductible"}, IncidentType: "collision", InitialOffer: 2800, FinalSettlement: 2950, StrategyUsed: "Policy Language Challenge", SuccessFactors: nil, TimelineDays: 21, AdjusterProfile: "by_the_book", NegotiationRounds: 2},
		{PolicyClauses: []string{"proof_of_loss"}, IncidentType: "collision", InitialOffer: 3600, FinalSettlement: 4300, StrategyUsed: "Documented Demand", SuccessFactors: []string{"itemized invoices"}, TimelineDays: 27, AdjusterProfile: "cooperative", NegotiationRounds: 3},
		{PolicyClauses: []string{"duties_after_loss"}, IncidentType: "collision", InitialOffer: 4100, FinalSettlement: 4300, StrategyUsed: "Documented Demand", SuccessFactors: nil, TimelineDays: 30, AdjusterProfile: "by_the_book", NegotiationRounds: 3},
		{PolicyClauses: []string{"insuring_agreement", "duties_after_loss"}, IncidentType: "water_damage", InitialOffer: 9800, FinalSettlement: 14700, StrategyUsed: "Policy Language Challenge", SuccessFactors: []string{"exclusion did not apply"}, TimelineDays: 55, AdjusterProfile: "adversarial", NegotiationRounds: 2},
		{PolicyClauses: []string{"appraisal"}, IncidentType: "water_damage", InitialOffer: 12500, FinalSettlement: 13000, StrategyUsed: "Coverage Reassertion", SuccessFactors: nil, TimelineDays: 48, AdjusterProfile: "by_the_book", NegotiationRounds: 2},
		{PolicyClauses: []string{"insuring_agreement"}, IncidentType: "water_damage", InitialOffer: 7400, FinalSettlement: 11200, StrategyUsed: "Coverage Reassertion", SuccessFactors: []string{"covered peril reasserted"}, TimelineDays: 44, AdjusterProfile: "cooperative", NegotiationRounds: 2},
		{PolicyClauses: []string{"proof_of_loss", "duties_after_loss"}, IncidentType: "water_damage", InitialOffer: 6100, FinalSettlement: 7000, StrategyUsed: "Good Faith Review", SuccessFactors: []string{"joint reinspection"}, TimelineDays: 36, AdjusterProfile: "cooperative", NegotiationRounds: 4},
		{PolicyClauses: []string{"proof_of_loss"}, IncidentType: "theft", InitialOffer: 5400, FinalSettlement: 5600, StrategyUsed: "Documented Demand", SuccessFactors: nil, TimelineDays: 33, AdjusterProfile: "by_the_book", NegotiationRounds: 3},
		{PolicyClauses: []string{"insuring_agreement", "proof_of_loss"}, IncidentType: "theft", InitialOffer: 4800, FinalSettlement: 6700, StrategyUsed: "Documented Demand", SuccessFactors: []string{"receipts recovered"}, TimelineDays: 29, AdjusterProfile: "cooperative", NegotiationRounds: 3},
		{PolicyClauses: []string{"insuring_agreement", "policy_limits"}, IncidentType: "fire", InitialOffer: 22000, FinalSettlement: 31000, StrategyUsed: "Policy Language Challenge", SuccessFactors: []string{"smoke damage covered"}, TimelineDays: 61, AdjusterProfile: "adversarial", NegotiationRounds: 2},
		{PolicyClauses: []string{"duties_after_loss"}, IncidentType: "fire", InitialOffer: 18500, FinalSettlement: 19000, StrategyUsed: "Good Faith Review", SuccessFactors: nil, TimelineDays: 42, AdjusterProfile: "by_the_book", NegotiationRounds: 4},
	}
}
