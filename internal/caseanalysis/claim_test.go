package caseanalysis

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestAnalyzeClaimDenialScenario(t *testing.T) {
	tax := DefaultTaxonomy()
	got, err := AnalyzeClaim(tax, "My claim was denied because of a policy exclusion.")
	if err != nil {
		t.Fatalf("AnalyzeClaim: %v", err)
	}
	if got.ClaimType != ClaimDenialLetter {
		t.Fatalf("claim type = %s, want %s", got.ClaimType, ClaimDenialLetter)
	}
	if want := []string{"policy_exclusion"}; !reflect.DeepEqual(got.DenialReasons, want) {
		t.Fatalf("denial reasons = %v, want %v", got.DenialReasons, want)
	}
	if got.DamagesClaimed != nil || got.IncidentDate != nil {
		t.Fatalf("damages/date should be absent, got %+v", got)
	}
	if diff(got.ExtractionConfidence, 0.4) > 1e-9 {
		t.Fatalf("confidence = %v, want 0.4", got.ExtractionConfidence)
	}
}

func TestAnalyzeClaimCollisionScenario(t *testing.T) {
	tax := DefaultTaxonomy()
	text := "I was rear-ended in a vehicle accident on 2024-03-15. " +
		"The repair estimate is $1,500 but the total loss of value is $2,800."
	got, err := AnalyzeClaim(tax, text)
	if err != nil {
		t.Fatalf("AnalyzeClaim: %v", err)
	}
	if got.ClaimType != ClaimCollision {
		t.Fatalf("claim type = %s, want %s", got.ClaimType, ClaimCollision)
	}
	if got.DamagesClaimed == nil || *got.DamagesClaimed != 2800 {
		t.Fatalf("damages = %v, want 2800", got.DamagesClaimed)
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got.IncidentDate == nil || !got.IncidentDate.Equal(want) {
		t.Fatalf("incident date = %v, want %v", got.IncidentDate, want)
	}
	if len(got.DenialReasons) != 0 {
		t.Fatalf("denial reasons = %v, want none", got.DenialReasons)
	}
	if diff(got.ExtractionConfidence, 0.6) > 1e-9 {
		t.Fatalf("confidence = %v, want 0.6", got.ExtractionConfidence)
	}
}

func TestAnalyzeClaimTypePriority(t *testing.T) {
	tax := DefaultTaxonomy()
	cases := []struct {
		name string
		text string
		want ClaimType
	}{
		{"denial beats collision", "Your collision claim was denied.", ClaimDenialLetter},
		{"settlement beats collision", "We are prepared to offer $3,000 for your vehicle accident.", ClaimSettlementOffer},
		{"policy document beats collision", "See the declarations page for collision limits.", ClaimPolicyDocument},
		{"water damage", "A pipe burst flooded the kitchen.", ClaimWaterDamage},
		{"general fallback", "lorem ipsum consectetur adipiscing elit", ClaimGeneral},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := AnalyzeClaim(tax, c.text)
			if err != nil {
				t.Fatalf("AnalyzeClaim: %v", err)
			}
			if got.ClaimType != c.want {
				t.Fatalf("claim type = %s, want %s", got.ClaimType, c.want)
			}
		})
	}
}

func TestAnalyzeClaimDenialReasonsInTextOrder(t *testing.T) {
	tax := DefaultTaxonomy()
	got, err := AnalyzeClaim(tax, "The denial cites fraud and also late notice on the claim.")
	if err != nil {
		t.Fatalf("AnalyzeClaim: %v", err)
	}
	want := []string{"misrepresentation", "late_notice"}
	if !reflect.DeepEqual(got.DenialReasons, want) {
		t.Fatalf("denial reasons = %v, want %v (text order, not table order)", got.DenialReasons, want)
	}
}

func TestExtractDamages(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }
	cases := []struct {
		name string
		text string
		want *float64
	}{
		{"largest wins", "estimate $1,500 but loss of value $2,800", ptr(2800)},
		{"usd prefix", "the demand totals USD 3,200", ptr(3200)},
		{"dollars suffix", "repairs cost 1,200 dollars", ptr(1200)},
		{"cents preserved", "a balance of $950.75 remains", ptr(950.75)},
		{"none", "no figures appear here", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := extractDamages(c.text)
			if (got == nil) != (c.want == nil) {
				t.Fatalf("extractDamages(%q) = %v, want %v", c.text, got, c.want)
			}
			if got != nil && *got != *c.want {
				t.Fatalf("extractDamages(%q) = %v, want %v", c.text, *got, *c.want)
			}
		})
	}
}

func TestExtractIncidentDate(t *testing.T) {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	cases := []struct {
		name string
		text string
		want *time.Time
	}{
		{"iso", "the loss occurred on 2024-03-15 at home", date(2024, time.March, 15)},
		{"slash", "the loss occurred on 03/15/2024 at home", date(2024, time.March, 15)},
		{"short year dashes", "reported 3-4-24 by phone", date(2024, time.March, 4)},
		{"written month", "the storm hit on March 15, 2024", date(2024, time.March, 15)},
		{"day first", "the storm hit on 15 March 2024", date(2024, time.March, 15)},
		{"abbreviated", "inspected Mar. 5 2024 on site", date(2024, time.March, 5)},
		{"invalid skipped", "filed 13/45/2024, loss on April 2, 2024", date(2024, time.April, 2)},
		{"iso outranks earlier written date", "noted March 1, 2024; incident 2024-02-15", date(2024, time.February, 15)},
		{"none", "no dates appear in this text", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := extractIncidentDate(c.text)
			if (got == nil) != (c.want == nil) {
				t.Fatalf("extractIncidentDate(%q) = %v, want %v", c.text, got, c.want)
			}
			if got != nil && !got.Equal(*c.want) {
				t.Fatalf("extractIncidentDate(%q) = %v, want %v", c.text, got, c.want)
			}
		})
	}
}

func TestAnalyzeClaimRejectsUnusableText(t *testing.T) {
	tax := DefaultTaxonomy()
	_, err := AnalyzeClaim(tax, "  ")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}
	if extractionErr.Doc != "claim" {
		t.Fatalf("doc = %q, want claim", extractionErr.Doc)
	}
}
