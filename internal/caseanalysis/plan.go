package caseanalysis

import "strings"

// BuildPlan expands the approach's round templates into a numbered plan.
// Round numbers are contiguous from 1.
func BuildPlan(tax *Taxonomy, rec StrategyRecommendation) NegotiationPlan {
	templates := tax.Rounds[rec.Approach]
	rounds := make([]Round, 0, len(templates))
	total := 0
	for i, tpl := range templates {
		actions := make([]string, 0, len(tpl.KeyActions))
		for _, a := range tpl.KeyActions {
			actions = append(actions, fillStrategy(a, rec.Name))
		}
		rounds = append(rounds, Round{
			Round:           i + 1,
			Objective:       fillStrategy(tpl.Objective, rec.Name),
			KeyActions:      actions,
			ExpectedOutcome: fillStrategy(tpl.ExpectedOutcome, rec.Name),
			TimelineDays:    tpl.TimelineDays,
		})
		total += tpl.TimelineDays
	}
	return NegotiationPlan{
		TotalRounds:           len(rounds),
		EstimatedDurationDays: total,
		Rounds:                rounds,
	}
}

func fillStrategy(tmpl, strategyName string) string {
	return strings.ReplaceAll(tmpl, "{strategy}", strategyName)
}
