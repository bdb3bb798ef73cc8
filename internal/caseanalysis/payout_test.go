package caseanalysis

import "testing"

func TestEstimatePayout(t *testing.T) {
	damages := 2800.0
	clm := ClaimAnalysis{DamagesClaimed: &damages, ExtractionConfidence: 0.6}

	got := EstimatePayout(clm, 0.45, 0.5583333333333333)
	if diff(got.Expected, 3430) > 1e-9 {
		t.Fatalf("expected = %v, want 3430", got.Expected)
	}
	if diff(got.Minimum, 2940) > 1e-9 {
		t.Fatalf("minimum = %v, want 2940", got.Minimum)
	}
	if diff(got.Maximum, 5145) > 1e-9 {
		t.Fatalf("maximum = %v, want 5145", got.Maximum)
	}
	if diff(got.Confidence, 0.5791666666666667) > 1e-9 {
		t.Fatalf("confidence = %v, want (0.6+success)/2", got.Confidence)
	}
}

func TestEstimatePayoutNoDamages(t *testing.T) {
	zero := 0.0
	cases := []struct {
		name string
		clm  ClaimAnalysis
	}{
		{"nil damages", ClaimAnalysis{ExtractionConfidence: 0.8}},
		{"zero damages", ClaimAnalysis{DamagesClaimed: &zero, ExtractionConfidence: 0.8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EstimatePayout(c.clm, 0.9, 0.9)
			if got != (PayoutRange{}) {
				t.Fatalf("payout = %+v, want zero range without a damages figure", got)
			}
		})
	}
}

func TestEstimatePayoutConfidenceCap(t *testing.T) {
	damages := 1000.0
	clm := ClaimAnalysis{DamagesClaimed: &damages, ExtractionConfidence: 1.0}
	got := EstimatePayout(clm, 1.0, 1.0)
	if got.Confidence != 0.95 {
		t.Fatalf("confidence = %v, want capped at 0.95", got.Confidence)
	}
}

func TestEstimateTimeline(t *testing.T) {
	cases := []struct {
		name      string
		claimType ClaimType
		prob      float64
		want      TimelineEstimate
	}{
		{
			name:      "denial letter low probability",
			claimType: ClaimDenialLetter,
			prob:      0.4,
			want:      TimelineEstimate{InitialResponseDays: 7, NegotiationRounds: 3, TotalEstimatedDays: 58, MaximumTimelineDays: 116},
		},
		{
			name:      "settlement offer high probability",
			claimType: ClaimSettlementOffer,
			prob:      0.8,
			want:      TimelineEstimate{InitialResponseDays: 4, NegotiationRounds: 1, TotalEstimatedDays: 16, MaximumTimelineDays: 32},
		},
		{
			name:      "collision neutral probability",
			claimType: ClaimCollision,
			prob:      0.6,
			want:      TimelineEstimate{InitialResponseDays: 7, NegotiationRounds: 2, TotalEstimatedDays: 30, MaximumTimelineDays: 60},
		},
		{
			name:      "general high probability",
			claimType: ClaimGeneral,
			prob:      0.75,
			want:      TimelineEstimate{InitialResponseDays: 6, NegotiationRounds: 1, TotalEstimatedDays: 24, MaximumTimelineDays: 48},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EstimateTimeline(c.claimType, c.prob)
			if got != c.want {
				t.Fatalf("timeline = %+v, want %+v", got, c.want)
			}
		})
	}
}
