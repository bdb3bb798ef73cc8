package caseanalysis

import (
	"strings"
	"testing"
)

func sampleLetterInput() LetterInput {
	damages := 2800.0
	return LetterInput{
		CaseID:       "case-2041",
		PolicyNumber: "HO-553211",
		Claim: ClaimAnalysis{
			ClaimType:            ClaimDenialLetter,
			DamagesClaimed:       &damages,
			DenialReasons:        []string{"policy_exclusion"},
			ExtractionConfidence: 0.6,
		},
		Points: []LeveragePoint{
			{Type: LeveragePolicyInterpretation, Description: "The stated denial ground can be contested", Strength: 0.6},
		},
		Strategy: StrategyRecommendation{Name: "Policy Language Challenge", Approach: ApproachAssertive},
		Payout:   PayoutRange{Minimum: 2940, Expected: 3430, Maximum: 5145, Confidence: 0.58},
	}
}

func TestDraftLetter(t *testing.T) {
	letter := DraftLetter(sampleLetterInput())

	if want := "Re: Claim Review - Policy #HO-553211"; letter.Subject != want {
		t.Fatalf("subject = %q, want %q", letter.Subject, want)
	}
	if letter.Recipient != "Claims Department" {
		t.Fatalf("recipient = %q, want Claims Department", letter.Recipient)
	}
	if letter.SenderName != "[Your Name]" {
		t.Fatalf("sender = %q, want placeholder when no claimant name is given", letter.SenderName)
	}

	text := letter.Text()
	for _, want := range []string{
		"Dear Claims Adjuster,",
		"claim case-2041 under policy #HO-553211",
		"- policy exclusion\n",
		"a fair resolution would be in the range of $3,430.",
		"within 7 business days",
		"Sincerely,\n[Your Name]\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("letter missing %q:\n%s", want, text)
		}
	}
}

func TestDraftLetterDeterministic(t *testing.T) {
	in := sampleLetterInput()
	first := DraftLetter(in).Text()
	second := DraftLetter(in).Text()
	if first != second {
		t.Fatal("identical inputs must produce byte-identical letters")
	}
}

func TestDraftLetterWithoutDamages(t *testing.T) {
	in := sampleLetterInput()
	in.Payout = PayoutRange{}
	text := DraftLetter(in).Text()
	if !strings.Contains(text, "full reassessment of the claim") {
		t.Fatalf("letter should request reassessment without a payout figure:\n%s", text)
	}
	if strings.Contains(text, "fair resolution would be in the range") {
		t.Fatalf("letter must not name a range without a payout figure:\n%s", text)
	}
}

func TestDraftLetterDefaults(t *testing.T) {
	in := sampleLetterInput()
	in.PolicyNumber = "  "
	in.ClaimantName = "Jordan Reyes"
	letter := DraftLetter(in)
	if letter.Subject != "Re: Claim Review - Policy #Unknown" {
		t.Fatalf("subject = %q, want Unknown policy number", letter.Subject)
	}
	if letter.SenderName != "Jordan Reyes" {
		t.Fatalf("sender = %q, want claimant name", letter.SenderName)
	}
	if !strings.HasSuffix(letter.Text(), "Sincerely,\nJordan Reyes\n") {
		t.Fatalf("letter should close with the claimant name:\n%s", letter.Text())
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{3430, "$3,430"},
		{1234567, "$1,234,567"},
	}
	for _, c := range cases {
		if got := formatUSD(c.in); got != c.want {
			t.Fatalf("formatUSD(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
