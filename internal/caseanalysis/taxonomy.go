package caseanalysis

type PhraseEntry struct {
	Tag     string
	Phrases []string
}

type ClaimTypeEntry struct {
	Type    ClaimType
	Phrases []string
}

type StrategyAction struct {
	Text       string
	References LeverageType
}

type StrategyTemplate struct {
	Name     string
	Approach Approach
	Weights  map[LeverageType]float64
	Actions  []StrategyAction
}

type RoundTemplate struct {
	Objective       string
	KeyActions      []string
	ExpectedOutcome string
	TimelineDays    int
}

type BaseRateKey struct {
	IncidentType string
	Strategy     string
}

// Taxonomy is built once at process start and never mutated afterwards, so
// any number of pipeline runs may read it concurrently without locking.
type Taxonomy struct {
	Coverage      []PhraseEntry
	Exclusions    []PhraseEntry
	Clauses       []PhraseEntry
	DenialReasons []PhraseEntry
	ClaimTypes    []ClaimTypeEntry
	Strategies    []StrategyTemplate
	Rounds        map[Approach][]RoundTemplate
	BaseRates     map[BaseRateKey]float64
}

func DefaultTaxonomy() *Taxonomy {
	return TaxonomyWithCalibration(defaultCalibration())
}

func TaxonomyWithCalibration(records []HistoricalCase) *Taxonomy {
	return &Taxonomy{
		Coverage:      defaultCoverage,
		Exclusions:    defaultExclusions,
		Clauses:       defaultClauses,
		DenialReasons: defaultDenialReasons,
		ClaimTypes:    defaultClaimTypes,
		Strategies:    defaultStrategies,
		Rounds:        defaultRounds,
		BaseRates:     computeBaseRates(records),
	}
}

func (t *Taxonomy) BaseRate(incidentType, strategy string) float64 {
	if r, ok := t.BaseRates[BaseRateKey{IncidentType: incidentType, Strategy: strategy}]; ok {
		return r
	}
	return 0.5
}

var defaultCoverage = []PhraseEntry{
	{Tag: "collision", Phrases: []string{"collision"}},
	{Tag: "comprehensive", Phrases: []string{"comprehensive"}},
	{Tag: "liability", Phrases: []string{"liability"}},
	{Tag: "uninsured_motorist", Phrases: []string{"uninsured motorist", "underinsured motorist"}},
	{Tag: "medical_payments", Phrases: []string{"medical payments", "medical expense", "medpay"}},
	{Tag: "personal_injury_protection", Phrases: []string{"personal injury protection", "pip coverage"}},
	{Tag: "property_damage", Phrases: []string{"property damage"}},
	{Tag: "water_damage", Phrases: []string{"water damage", "water backup", "sewer backup"}},
	{Tag: "fire", Phrases: []string{"fire", "smoke damage", "lightning"}},
	{Tag: "theft", Phrases: []string{"theft", "stolen", "burglary"}},
	{Tag: "dwelling", Phrases: []string{"dwelling"}},
	{Tag: "loss_of_use", Phrases: []string{"loss of use", "additional living expense"}},
}

var defaultExclusions = []PhraseEntry{
	{Tag: "flood", Phrases: []string{"flood", "flooding", "surface water"}},
	{Tag: "wear_and_tear", Phrases: []string{"wear and tear", "deterioration", "lack of maintenance"}},
	{Tag: "intentional_acts", Phrases: []string{"intentional act", "intentional damage", "intentionally caused"}},
	{Tag: "pre_existing_damage", Phrases: []string{"pre-existing", "preexisting", "prior damage"}},
	{Tag: "earth_movement", Phrases: []string{"earth movement", "earthquake", "landslide"}},
	{Tag: "mold", Phrases: []string{"mold", "fungus", "wet rot"}},
	{Tag: "business_use", Phrases: []string{"business use", "commercial use", "business pursuits"}},
	{Tag: "racing", Phrases: []string{"racing", "speed contest"}},
}

var defaultClauses = []PhraseEntry{
	{Tag: "insuring_agreement", Phrases: []string{"insuring agreement", "we will pay", "coverage"}},
	{Tag: "appraisal", Phrases: []string{"appraisal"}},
	{Tag: "proof_of_loss", Phrases: []string{"proof of loss"}},
	{Tag: "duties_after_loss", Phrases: []string{"duties after loss", "notify us promptly", "prompt notice"}},
	{Tag: "subrogation", Phrases: []string{"subrogation"}},
	{Tag: "deductible", Phrases: []string{"deductible"}},
	{Tag: "policy_limits", Phrases: []string{"limit of liability", "policy limit", "limits shown"}},
	{Tag: "endorsement", Phrases: []string{"endorsement", "rider"}},
	{Tag: "cancellation", Phrases: []string{"cancellation", "cancel this policy"}},
}

var defaultDenialReasons = []PhraseEntry{
	{Tag: "policy_exclusion", Phrases: []string{"exclusion", "excluded"}},
	{Tag: "late_notice", Phrases: []string{"late notice", "untimely notice", "failed to notify", "notice requirement"}},
	{Tag: "lack_of_coverage", Phrases: []string{"not covered", "no coverage", "outside the coverage", "coverage does not apply"}},
	{Tag: "insufficient_documentation", Phrases: []string{"insufficient documentation", "lack of documentation", "unsubstantiated", "no proof"}},
	{Tag: "pre_existing_damage", Phrases: []string{"pre-existing", "preexisting", "prior damage"}},
	{Tag: "wear_and_tear", Phrases: []string{"wear and tear", "deterioration"}},
	{Tag: "coverage_limit", Phrases: []string{"exceeds the limit", "policy limit reached", "limit exhausted"}},
	{Tag: "misrepresentation", Phrases: []string{"misrepresentation", "material misstatement", "fraud"}},
}

var defaultClaimTypes = []ClaimTypeEntry{
	{Type: ClaimDenialLetter, Phrases: []string{"denied", "denial", "we regret", "not covered", "unfortunately", "rejected your claim"}},
	{Type: ClaimSettlementOffer, Phrases: []string{"settlement offer", "final offer", "offer to settle", "we are prepared to offer"}},
	{Type: ClaimPolicyDocument, Phrases: []string{"declarations page", "insuring agreement", "policy period", "premium due"}},
	{Type: ClaimCollision, Phrases: []string{"collision", "rear-ended", "rear ended", "vehicle accident", "auto accident", "car accident"}},
	{Type: ClaimWaterDamage, Phrases: []string{"water damage", "pipe burst", "burst pipe", "water leak", "flooded basement"}},
}

var defaultStrategies = []StrategyTemplate{
	{
		Name:     "Good Faith Review",
		Approach: ApproachCollaborative,
		Weights: map[LeverageType]float64{
			LeverageProcedural:            1.0,
			LeverageDocumentationStrength: 0.5,
		},
		Actions: []StrategyAction{
			{Text: "Request a complete copy of the claim file and adjuster notes", References: LeverageProcedural},
			{Text: "Invite the adjuster to walk through the coverage determination together", References: LeveragePolicyInterpretation},
			{Text: "Organize supporting documentation for a joint review", References: LeverageDocumentationStrength},
			{Text: "Propose a good-faith timeline for reinspection", References: LeverageProcedural},
		},
	},
	{
		Name:     "Documented Demand",
		Approach: ApproachDataDriven,
		Weights: map[LeverageType]float64{
			LeverageDocumentationStrength: 1.0,
			LeverageProcedural:            0.3,
		},
		Actions: []StrategyAction{
			{Text: "Compile an itemized demand package with every supporting document", References: LeverageDocumentationStrength},
			{Text: "Cross-reference each damage item to its evidence", References: LeverageDocumentationStrength},
			{Text: "Request the carrier's valuation basis in writing", References: LeverageProcedural},
			{Text: "Set a documented response deadline", References: LeverageProcedural},
		},
	},
	{
		Name:     "Policy Language Challenge",
		Approach: ApproachAssertive,
		Weights: map[LeverageType]float64{
			LeveragePolicyInterpretation: 1.0,
			LeverageCoverageGap:          0.7,
		},
		Actions: []StrategyAction{
			{Text: "Quote the insuring agreement language that covers the loss", References: LeveragePolicyInterpretation},
			{Text: "Demand the specific exclusion text relied on for the denial", References: LeveragePolicyInterpretation},
			{Text: "Contrast the denial reason with the covered perils list", References: LeverageCoverageGap},
			{Text: "Reserve appraisal and regulatory complaint rights in writing", References: LeverageProcedural},
		},
	},
	{
		Name:     "Coverage Reassertion",
		Approach: ApproachAssertive,
		Weights: map[LeverageType]float64{
			LeverageCoverageGap:           1.0,
			LeveragePolicyInterpretation:  0.6,
			LeverageDocumentationStrength: 0.3,
		},
		Actions: []StrategyAction{
			{Text: "Reassert each covered peril the denial ignores", References: LeverageCoverageGap},
			{Text: "Map the loss facts to the covered perils list", References: LeverageCoverageGap},
			{Text: "Challenge any exclusion reading that swallows the coverage grant", References: LeveragePolicyInterpretation},
			{Text: "Demand a written coverage position citing policy provisions", References: LeverageProcedural},
		},
	},
	{
		Name:     "Market Value Recalculation",
		Approach: ApproachDataDriven,
		Weights: map[LeverageType]float64{
			LeverageMarketValueComparison: 1.0,
			LeverageDocumentationStrength: 0.6,
		},
		Actions: []StrategyAction{
			{Text: "Present independent market comparables for the loss", References: LeverageMarketValueComparison},
			{Text: "Rebut the carrier's valuation with documented comps", References: LeverageMarketValueComparison},
			{Text: "Itemize repair or replacement costs with written estimates", References: LeverageDocumentationStrength},
			{Text: "Request the valuation vendor's methodology", References: LeverageProcedural},
		},
	},
}

var defaultRounds = map[Approach][]RoundTemplate{
	ApproachAssertive: {
		{
			Objective: "Present demand and establish position",
			KeyActions: []string{
				"Deliver the {strategy} demand letter",
				"Cite the specific policy language supporting the claim",
				"Set a firm response deadline",
			},
			ExpectedOutcome: "Adjuster acknowledges the dispute and reviews the cited provisions",
			TimelineDays:    7,
		},
		{
			Objective: "Reach final resolution or escalate",
			KeyActions: []string{
				"Evaluate the adjuster's revised position",
				"Present the final settlement figure",
				"Prepare escalation to appraisal or a regulatory complaint",
			},
			ExpectedOutcome: "Settlement at or near the demand, or a documented basis for escalation",
			TimelineDays:    7,
		},
	},
	ApproachDataDriven: {
		{
			Objective: "Present initial case and establish position",
			KeyActions: []string{
				"Submit the {strategy} analysis with a documentation index",
				"Provide itemized damages support",
				"Request the carrier's valuation worksheet",
			},
			ExpectedOutcome: "Carrier engages with the documented valuation",
			TimelineDays:    7,
		},
		{
			Objective: "Strengthen case with additional evidence",
			KeyActions: []string{
				"Supply comparable valuations and written estimates",
				"Rebut the carrier's worksheet line by line",
				"Confirm remaining points of disagreement in writing",
			},
			ExpectedOutcome: "Disagreement narrowed to a small set of quantified items",
			TimelineDays:    14,
		},
		{
			Objective: "Engage in active settlement negotiation",
			KeyActions: []string{
				"Exchange settlement figures against the documented range",
				"Concede only items the evidence does not support",
				"Confirm the agreed amount and payment terms",
			},
			ExpectedOutcome: "Settlement within the documented range",
			TimelineDays:    10,
		},
	},
	ApproachCollaborative: {
		{
			Objective: "Present initial case and establish position",
			KeyActions: []string{
				"Open a dialogue with the adjuster on the {strategy} review",
				"Share the claim summary and supporting documents",
				"Agree on the facts that are not in dispute",
			},
			ExpectedOutcome: "Shared understanding of the claim record",
			TimelineDays:    7,
		},
		{
			Objective: "Strengthen case with additional evidence",
			KeyActions: []string{
				"Provide any documentation the adjuster identified as missing",
				"Walk through the policy provisions together",
				"Request reinspection where the damage assessment is disputed",
			},
			ExpectedOutcome: "Carrier revisits the initial determination",
			TimelineDays:    14,
		},
		{
			Objective: "Engage in active settlement negotiation",
			KeyActions: []string{
				"Discuss settlement ranges openly",
				"Identify trade-offs acceptable to both sides",
				"Document each interim agreement in writing",
			},
			ExpectedOutcome: "Converging settlement figures",
			TimelineDays:    10,
		},
		{
			Objective: "Reach final resolution or escalate",
			KeyActions: []string{
				"Confirm the final settlement terms",
				"Obtain the agreement in writing",
				"Escalate through appraisal only if agreement fails",
			},
			ExpectedOutcome: "Signed settlement or a clear record for escalation",
			TimelineDays:    7,
		},
	},
}
