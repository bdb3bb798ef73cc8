package caseanalysis

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "claimpilot/caseanalysis"

type Pipeline struct {
	tax    *Taxonomy
	tracer trace.Tracer
}

// NewPipeline validates the strategy catalog once at construction; a broken
// catalog is a process configuration error, not a per-case condition.
func NewPipeline(tax *Taxonomy) (*Pipeline, error) {
	if tax == nil || len(tax.Strategies) == 0 {
		return nil, &StrategySelectionError{Reason: "strategy catalog is empty"}
	}
	for i, tpl := range tax.Strategies {
		if strings.TrimSpace(tpl.Name) == "" {
			return nil, &StrategySelectionError{Reason: fmt.Sprintf("strategy %d has no name", i)}
		}
		if len(tpl.Weights) == 0 {
			return nil, &StrategySelectionError{Reason: fmt.Sprintf("strategy %q has no weights", tpl.Name)}
		}
		if len(tax.Rounds[tpl.Approach]) == 0 {
			return nil, &StrategySelectionError{Reason: fmt.Sprintf("strategy %q has no round templates for approach %s", tpl.Name, tpl.Approach)}
		}
	}
	return &Pipeline{tax: tax, tracer: otel.Tracer(tracerName)}, nil
}

func (p *Pipeline) Taxonomy() *Taxonomy { return p.tax }

// Run executes the full analysis chain for one case. Both documents are
// checked before any stage runs, so unusable input fails without a partial
// stage trail.
func (p *Pipeline) Run(ctx context.Context, in CaseInput) (CaseAnalysis, error) {
	ctx, span := p.tracer.Start(ctx, "caseanalysis.run")
	defer span.End()

	res := CaseAnalysis{
		CaseID:       in.CaseID,
		PolicyNumber: in.PolicyNumber,
		ClaimantName: in.ClaimantName,
		Metadata:     AnalysisMetadata{StartedAt: time.Now().UTC(), Mode: ModeComplete},
	}

	policyText, claimText := in.PolicyText, in.ClaimText
	if len(policyText) > MaxDocumentChars {
		policyText = truncateDocument(policyText)
		res.Metadata.InputTruncated = true
	}
	if len(claimText) > MaxDocumentChars {
		claimText = truncateDocument(claimText)
		res.Metadata.InputTruncated = true
	}
	if err := checkDocument("policy", policyText); err != nil {
		return p.finalize(res), err
	}
	if err := checkDocument("claim", claimText); err != nil {
		return p.finalize(res), err
	}

	pol, err := p.runPolicyAnalysis(ctx, &res, policyText)
	if err != nil {
		return p.finalize(res), err
	}
	clm, err := p.runClaimAnalysis(ctx, &res, claimText)
	if err != nil {
		return p.finalize(res), err
	}
	points, err := p.runLeverageDetection(ctx, &res, pol, clm)
	if err != nil {
		return p.finalize(res), err
	}
	rec, err := p.runStrategySelection(ctx, &res, points, clm.ClaimType)
	if err != nil {
		return p.finalize(res), err
	}
	if err := p.runNegotiationPlanning(ctx, &res, rec); err != nil {
		return p.finalize(res), err
	}
	if err := p.runPayoutEstimation(ctx, &res, pol, clm, rec); err != nil {
		return p.finalize(res), err
	}
	return p.finalize(res), nil
}

// truncateDocument cuts text at MaxDocumentChars without splitting a rune.
func truncateDocument(text string) string {
	cut := MaxDocumentChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// DraftLetter renders the negotiation letter for a completed analysis.
func (p *Pipeline) DraftLetter(a CaseAnalysis) Letter {
	return DraftLetter(LetterInput{
		CaseID:       a.CaseID,
		PolicyNumber: a.PolicyNumber,
		ClaimantName: a.ClaimantName,
		Claim:        a.ClaimAnalysis,
		Points:       a.LeveragePoints,
		Strategy:     a.RecommendedStrategy,
		Payout:       a.EstimatedPayoutRange,
	})
}

func (p *Pipeline) runPolicyAnalysis(ctx context.Context, res *CaseAnalysis, text string) (PolicyAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return PolicyAnalysis{}, err
	}
	_, span := p.tracer.Start(ctx, "analyze.policy_analysis")
	defer span.End()
	pol, err := AnalyzePolicy(p.tax, text)
	if err != nil {
		return PolicyAnalysis{}, &StageError{Stage: "policy_analysis", Err: err}
	}
	res.PolicyAnalysis = pol
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "policy_analysis")
	return pol, nil
}

func (p *Pipeline) runClaimAnalysis(ctx context.Context, res *CaseAnalysis, text string) (ClaimAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return ClaimAnalysis{}, err
	}
	_, span := p.tracer.Start(ctx, "analyze.claim_analysis")
	defer span.End()
	clm, err := AnalyzeClaim(p.tax, text)
	if err != nil {
		return ClaimAnalysis{}, &StageError{Stage: "claim_analysis", Err: err}
	}
	res.ClaimAnalysis = clm
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "claim_analysis")
	return clm, nil
}

func (p *Pipeline) runLeverageDetection(ctx context.Context, res *CaseAnalysis, pol PolicyAnalysis, clm ClaimAnalysis) ([]LeveragePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, span := p.tracer.Start(ctx, "analyze.leverage_detection")
	defer span.End()
	points := DetectLeverage(p.tax, pol, clm)
	res.LeveragePoints = points
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "leverage_detection")
	return points, nil
}

func (p *Pipeline) runStrategySelection(ctx context.Context, res *CaseAnalysis, points []LeveragePoint, claimType ClaimType) (StrategyRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return StrategyRecommendation{}, err
	}
	_, span := p.tracer.Start(ctx, "analyze.strategy_selection")
	defer span.End()
	rec := SelectStrategy(p.tax, points, claimType)
	res.RecommendedStrategy = rec
	res.StrategyScore = rec.StrategyScore
	res.SuccessProbability = rec.SuccessProbability
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "strategy_selection")
	return rec, nil
}

func (p *Pipeline) runNegotiationPlanning(ctx context.Context, res *CaseAnalysis, rec StrategyRecommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := p.tracer.Start(ctx, "analyze.negotiation_planning")
	defer span.End()
	res.NegotiationPlan = BuildPlan(p.tax, rec)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "negotiation_planning")
	return nil
}

func (p *Pipeline) runPayoutEstimation(ctx context.Context, res *CaseAnalysis, pol PolicyAnalysis, clm ClaimAnalysis, rec StrategyRecommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := p.tracer.Start(ctx, "analyze.payout_estimation")
	defer span.End()
	res.EstimatedPayoutRange = EstimatePayout(clm, rec.StrategyScore, rec.SuccessProbability)
	res.TimelineEstimate = EstimateTimeline(clm.ClaimType, rec.SuccessProbability)
	res.RiskFactors = riskFactors(pol, clm)
	res.StrengthFactors = strengthFactors(pol, clm)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "payout_estimation")
	return nil
}

func (p *Pipeline) finalize(res CaseAnalysis) CaseAnalysis {
	res.Metadata.CompletedAt = time.Now().UTC()
	if res.PolicyAnalysis.ExtractionConfidence == 0 && res.ClaimAnalysis.ExtractionConfidence == 0 {
		res.Metadata.Mode = ModeDegraded
	}
	return res
}
