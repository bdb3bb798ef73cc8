package caseanalysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var currencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)\bUSD\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*dollars?\b`),
}

type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
		layouts: []string{"2006-1-2"},
	},
	{
		re:      regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		layouts: []string{"1/2/2006", "1/2/06", "1-2-2006", "1-2-06"},
	},
	{
		re:      regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}\b`),
		layouts: []string{"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006", "Jan. 2, 2006", "Jan. 2 2006"},
	},
	{
		re:      regexp.MustCompile(`\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?,?\s+\d{4}\b`),
		layouts: []string{"2 January 2006", "2 Jan 2006", "2 Jan. 2006", "2 January, 2006", "2 Jan, 2006"},
	},
}

// AnalyzeClaim extracts the claim type, damages figure, incident date, and
// denial reasons from claim or denial correspondence.
func AnalyzeClaim(tax *Taxonomy, text string) (ClaimAnalysis, error) {
	if err := checkDocument("claim", text); err != nil {
		return ClaimAnalysis{}, err
	}
	norm := normalizeText(text)
	words := textWords(norm)

	claimType := ClaimGeneral
	for _, e := range tax.ClaimTypes {
		if entryMatches(norm, words, PhraseEntry{Tag: string(e.Type), Phrases: e.Phrases}) {
			claimType = e.Type
			break
		}
	}

	damages := extractDamages(text)
	incidentDate := extractIncidentDate(text)

	type reasonMatch struct {
		tag    string
		offset int
	}
	var matched []reasonMatch
	for _, e := range tax.DenialReasons {
		if i := entryFirstIndex(norm, words, e); i >= 0 {
			matched = append(matched, reasonMatch{tag: e.Tag, offset: i})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].offset < matched[j].offset })
	var denialReasons []string
	for _, m := range matched {
		denialReasons = append(denialReasons, m.tag)
	}

	signals := len(denialReasons)
	if claimType != ClaimGeneral {
		signals++
	}
	if damages != nil {
		signals++
	}
	if incidentDate != nil {
		signals++
	}
	conf := float64(signals) / float64(ExpectedClaimEntries)
	if conf > 1 {
		conf = 1
	}

	return ClaimAnalysis{
		ClaimType:            claimType,
		DamagesClaimed:       damages,
		IncidentDate:         incidentDate,
		DenialReasons:        denialReasons,
		ExtractionConfidence: conf,
	}, nil
}

// extractDamages returns the largest monetary amount in the text, reading
// the claim as the claimant's most favorable figure. Ties keep the first
// occurrence.
func extractDamages(text string) *float64 {
	type moneyMatch struct {
		offset int
		amount float64
	}
	var matches []moneyMatch
	for _, re := range currencyPatterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			raw := strings.ReplaceAll(text[idx[2]:idx[3]], ",", "")
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			matches = append(matches, moneyMatch{offset: idx[0], amount: amount})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].offset < matches[j].offset })
	best := matches[0]
	for _, m := range matches[1:] {
		if m.amount > best.amount {
			best = m
		}
	}
	return &best.amount
}

// extractIncidentDate tries the date patterns in priority order (ISO, then
// slash, then written month forms); the first candidate that parses wins.
// Candidates that fail to parse (month 13 and the like) are skipped.
func extractIncidentDate(text string) *time.Time {
	for _, p := range datePatterns {
		for _, raw := range p.re.FindAllString(text, -1) {
			for _, layout := range p.layouts {
				if t, err := time.Parse(layout, raw); err == nil {
					t = t.UTC()
					return &t
				}
			}
		}
	}
	return nil
}
