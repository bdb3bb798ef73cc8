package caseanalysis

// The expected figure doubles as the letter's settlement ask so the letter
// never contradicts the payout range reported alongside it.
const (
	payoutMinimumFactor = 1.05
	payoutMaximumFactor = 1.5
	payoutAskFactor     = 0.5
	maxPayoutConfidence = 0.95
)

func EstimatePayout(clm ClaimAnalysis, strategyScore, successProbability float64) PayoutRange {
	if clm.DamagesClaimed == nil || *clm.DamagesClaimed <= 0 {
		return PayoutRange{}
	}
	base := *clm.DamagesClaimed
	expected := base * (1 + payoutAskFactor*strategyScore)
	conf := (clm.ExtractionConfidence + successProbability) / 2
	if conf > maxPayoutConfidence {
		conf = maxPayoutConfidence
	}
	return PayoutRange{
		Minimum:    base * payoutMinimumFactor,
		Expected:   expected,
		Maximum:    expected * payoutMaximumFactor,
		Confidence: clamp01(conf),
	}
}

func EstimateTimeline(claimType ClaimType, successProbability float64) TimelineEstimate {
	baseDays := 30
	switch claimType {
	case ClaimDenialLetter:
		baseDays = 45
	case ClaimSettlementOffer:
		baseDays = 21
	}
	mult := 1.0
	if successProbability > 0.7 {
		mult = 0.8
	} else if successProbability < 0.5 {
		mult = 1.3
	}
	total := int(float64(baseDays) * mult)
	initial := total / 4
	if initial > 7 {
		initial = 7
	}
	rounds := total / 15
	if rounds < 1 {
		rounds = 1
	}
	return TimelineEstimate{
		InitialResponseDays: initial,
		NegotiationRounds:   rounds,
		TotalEstimatedDays:  total,
		MaximumTimelineDays: total * 2,
	}
}
