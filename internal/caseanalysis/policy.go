package caseanalysis

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// AnalyzePolicy matches policy text against the taxonomy's coverage,
// exclusion, and clause tables. Zero matches is not an error; it yields an
// empty analysis with confidence 0 and downstream stages run degraded.
func AnalyzePolicy(tax *Taxonomy, text string) (PolicyAnalysis, error) {
	if err := checkDocument("policy", text); err != nil {
		return PolicyAnalysis{}, err
	}
	norm := normalizeText(text)
	words := textWords(norm)

	var coverage, exclusions, clauses []string
	matched := 0
	for _, e := range tax.Coverage {
		if entryMatches(norm, words, e) {
			coverage = append(coverage, e.Tag)
			matched++
		}
	}
	for _, e := range tax.Exclusions {
		if entryMatches(norm, words, e) {
			exclusions = append(exclusions, e.Tag)
			matched++
		}
	}
	for _, e := range tax.Clauses {
		if entryMatches(norm, words, e) {
			clauses = append(clauses, e.Tag)
			matched++
		}
	}
	sort.Strings(coverage)
	sort.Strings(exclusions)

	conf := float64(matched) / float64(ExpectedPolicyEntries)
	if conf > 1 {
		conf = 1
	}
	return PolicyAnalysis{
		CoverageTypes:        coverage,
		Exclusions:           exclusions,
		KeyClauses:           clauses,
		ExtractionConfidence: conf,
	}, nil
}

func checkDocument(doc, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ExtractionError{Doc: doc, Reason: "text is empty"}
	}
	if !utf8.ValidString(text) {
		return &ExtractionError{Doc: doc, Reason: "text is not valid UTF-8"}
	}
	return nil
}
