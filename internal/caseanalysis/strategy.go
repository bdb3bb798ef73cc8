package caseanalysis

// SelectStrategy scores every catalog template against the detected
// leverage points and picks the highest scorer. A strict comparison keeps
// the earlier catalog entry on ties; the catalog is ordered most-general to
// most-specific.
func SelectStrategy(tax *Taxonomy, points []LeveragePoint, claimType ClaimType) StrategyRecommendation {
	best := tax.Strategies[0]
	bestScore := scoreTemplate(best, points)
	for _, tpl := range tax.Strategies[1:] {
		if s := scoreTemplate(tpl, points); s > bestScore {
			best = tpl
			bestScore = s
		}
	}

	base := tax.BaseRate(string(claimType), best.Name)
	return StrategyRecommendation{
		Name:               best.Name,
		Approach:           best.Approach,
		StrategyScore:      bestScore,
		SuccessProbability: clamp01(0.5*bestScore + 0.5*base),
		RecommendedActions: orderActions(best.Actions, points),
	}
}

// scoreTemplate is the weighted mean of the strengths of the points whose
// type the template weights. Templates with no matching points score 0.
func scoreTemplate(tpl StrategyTemplate, points []LeveragePoint) float64 {
	var num, den float64
	for _, p := range points {
		w, ok := tpl.Weights[p.Type]
		if !ok {
			continue
		}
		num += p.Strength * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// orderActions puts actions referencing a present leverage-point type first,
// preserving declaration order within each group.
func orderActions(actions []StrategyAction, points []LeveragePoint) []string {
	present := map[LeverageType]bool{}
	for _, p := range points {
		present[p.Type] = true
	}
	ordered := make([]string, 0, len(actions))
	for _, a := range actions {
		if present[a.References] {
			ordered = append(ordered, a.Text)
		}
	}
	for _, a := range actions {
		if !present[a.References] {
			ordered = append(ordered, a.Text)
		}
	}
	return ordered
}
