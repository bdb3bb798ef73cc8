package caseanalysis

import "time"

const (
	MaxDocumentChars      = 200000
	ExpectedPolicyEntries = 12
	ExpectedClaimEntries  = 5
)

type ClaimType string

const (
	ClaimCollision       ClaimType = "collision"
	ClaimWaterDamage     ClaimType = "water_damage"
	ClaimDenialLetter    ClaimType = "denial_letter"
	ClaimSettlementOffer ClaimType = "settlement_offer"
	ClaimPolicyDocument  ClaimType = "policy_document"
	ClaimGeneral         ClaimType = "general"
)

type Approach string

const (
	ApproachAssertive     Approach = "assertive"
	ApproachCollaborative Approach = "collaborative"
	ApproachDataDriven    Approach = "data_driven"
)

type LeverageType string

const (
	LeveragePolicyInterpretation  LeverageType = "policy_interpretation"
	LeverageCoverageGap           LeverageType = "coverage_gap"
	LeverageDocumentationStrength LeverageType = "documentation_strength"
	LeverageMarketValueComparison LeverageType = "market_value_comparison"
	LeverageProcedural            LeverageType = "procedural"
)

type AnalysisMode string

const (
	ModeComplete AnalysisMode = "COMPLETE"
	ModeDegraded AnalysisMode = "DEGRADED"
)

type PolicyAnalysis struct {
	CoverageTypes        []string `json:"coverage_types"`
	Exclusions           []string `json:"exclusions"`
	KeyClauses           []string `json:"key_clauses"`
	ExtractionConfidence float64  `json:"extraction_confidence"`
}

type ClaimAnalysis struct {
	ClaimType            ClaimType  `json:"claim_type"`
	DamagesClaimed       *float64   `json:"damages_claimed"`
	IncidentDate         *time.Time `json:"incident_date"`
	DenialReasons        []string   `json:"denial_reasons"`
	ExtractionConfidence float64    `json:"extraction_confidence"`
}

type LeveragePoint struct {
	Type        LeverageType `json:"type"`
	Description string       `json:"description"`
	Strength    float64      `json:"strength"`
}

type StrategyRecommendation struct {
	Name               string   `json:"name"`
	Approach           Approach `json:"approach"`
	StrategyScore      float64  `json:"strategy_score"`
	SuccessProbability float64  `json:"success_probability"`
	RecommendedActions []string `json:"recommended_actions"`
}

type Round struct {
	Round           int      `json:"round"`
	Objective       string   `json:"objective"`
	KeyActions      []string `json:"key_actions"`
	ExpectedOutcome string   `json:"expected_outcome"`
	TimelineDays    int      `json:"timeline_days"`
}

type NegotiationPlan struct {
	TotalRounds           int     `json:"total_rounds"`
	EstimatedDurationDays int     `json:"estimated_duration_days"`
	Rounds                []Round `json:"rounds"`
}

type PayoutRange struct {
	Minimum    float64 `json:"minimum"`
	Expected   float64 `json:"expected"`
	Maximum    float64 `json:"maximum"`
	Confidence float64 `json:"confidence"`
}

type TimelineEstimate struct {
	InitialResponseDays int `json:"initial_response_days"`
	NegotiationRounds   int `json:"negotiation_rounds"`
	TotalEstimatedDays  int `json:"total_estimated_days"`
	MaximumTimelineDays int `json:"maximum_timeline_days"`
}

type CaseInput struct {
	CaseID       string `json:"case_id"`
	PolicyNumber string `json:"policy_number,omitempty"`
	ClaimantName string `json:"claimant_name,omitempty"`
	PolicyText   string `json:"policy_text"`
	ClaimText    string `json:"claim_text"`
}

type AnalysisMetadata struct {
	StagesExecuted []string     `json:"stages_executed"`
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    time.Time    `json:"completed_at"`
	InputTruncated bool         `json:"input_truncated,omitempty"`
	Mode           AnalysisMode `json:"mode"`
}

type CaseAnalysis struct {
	CaseID               string                 `json:"case_id"`
	PolicyNumber         string                 `json:"policy_number,omitempty"`
	ClaimantName         string                 `json:"claimant_name,omitempty"`
	PolicyAnalysis       PolicyAnalysis         `json:"policy_analysis"`
	ClaimAnalysis        ClaimAnalysis          `json:"claim_analysis"`
	LeveragePoints       []LeveragePoint        `json:"leverage_points"`
	RecommendedStrategy  StrategyRecommendation `json:"recommended_strategy"`
	StrategyScore        float64                `json:"strategy_score"`
	SuccessProbability   float64                `json:"success_probability"`
	EstimatedPayoutRange PayoutRange            `json:"estimated_payout_range"`
	NegotiationPlan      NegotiationPlan        `json:"negotiation_plan"`
	RiskFactors          []string               `json:"risk_factors"`
	StrengthFactors      []string               `json:"strength_factors"`
	TimelineEstimate     TimelineEstimate       `json:"timeline_estimate"`
	Metadata             AnalysisMetadata       `json:"metadata"`
}
