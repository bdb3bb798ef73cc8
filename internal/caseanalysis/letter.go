package caseanalysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type LetterInput struct {
	CaseID       string
	PolicyNumber string
	ClaimantName string
	Claim        ClaimAnalysis
	Points       []LeveragePoint
	Strategy     StrategyRecommendation
	Payout       PayoutRange
}

type Letter struct {
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	Recipient    string `json:"recipient"`
	SenderName   string `json:"sender_name"`
	PolicyNumber string `json:"policy_number"`
	CaseID       string `json:"case_id"`
}

func (l Letter) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", l.Subject)
	b.WriteString("Dear Claims Adjuster,\n\n")
	b.WriteString(l.Body)
	b.WriteString("Sincerely,\n")
	b.WriteString(l.SenderName)
	b.WriteString("\n")
	return b.String()
}

// DraftLetter renders the negotiation letter. It carries no timestamps and
// makes no external calls; identical inputs produce byte-identical text.
func DraftLetter(in LetterInput) Letter {
	policyNumber := strings.TrimSpace(in.PolicyNumber)
	if policyNumber == "" {
		policyNumber = "Unknown"
	}
	sender := strings.TrimSpace(in.ClaimantName)
	if sender == "" {
		sender = "[Your Name]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I am writing regarding claim %s under policy #%s. After a detailed review of the policy language and the claim record, I am requesting that your office reconsider its current position.\n\n", in.CaseID, policyNumber)

	if len(in.Claim.DenialReasons) > 0 {
		b.WriteString("The stated grounds for the denial were:\n")
		for _, r := range in.Claim.DenialReasons {
			fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(r, "_", " "))
		}
		b.WriteString("\n")
	}

	for _, p := range in.Points {
		b.WriteString(leverageParagraph(p))
		b.WriteString("\n\n")
	}

	if in.Payout.Expected > 0 {
		fmt.Fprintf(&b, "Based on the documented damages and the policy provisions cited above, a fair resolution would be in the range of %s. I request your written response within 7 business days.\n\n", formatUSD(math.Round(in.Payout.Expected)))
	} else {
		b.WriteString("Because the claim record does not yet establish a settled damages figure, I request a full reassessment of the claim together with an itemized written valuation. I request your written response within 7 business days.\n\n")
	}

	return Letter{
		Subject:      fmt.Sprintf("Re: Claim Review - Policy #%s", policyNumber),
		Body:         b.String(),
		Recipient:    "Claims Department",
		SenderName:   sender,
		PolicyNumber: policyNumber,
		CaseID:       in.CaseID,
	}
}

func leverageParagraph(p LeveragePoint) string {
	switch p.Type {
	case LeveragePolicyInterpretation:
		return p.Description + ". The policy language does not support the denial as issued, and I ask that the cited provisions be reviewed against the loss facts."
	case LeverageCoverageGap:
		return p.Description + ". Any coverage position must explain why this grant is inapplicable to the loss."
	case LeverageDocumentationStrength:
		return p.Description + ". Each element of the loss is supported in writing in the claim file before you."
	case LeverageMarketValueComparison:
		return p.Description + ". The current valuation is not supported by market data for comparable losses."
	default:
		return p.Description + ". I expect the claim to be handled in accordance with the policy's procedural requirements and applicable claims-handling standards."
	}
}

// formatUSD renders a whole-dollar amount with comma grouping ("$3,640").
func formatUSD(v float64) string {
	n := int64(v)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + "$" + b.String()
}
