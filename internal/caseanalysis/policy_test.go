package caseanalysis

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnalyzePolicyScenario(t *testing.T) {
	tax := DefaultTaxonomy()
	text := "The policy provides liability coverage and collision coverage."

	got, err := AnalyzePolicy(tax, text)
	if err != nil {
		t.Fatalf("AnalyzePolicy: %v", err)
	}
	if want := []string{"collision", "liability"}; !reflect.DeepEqual(got.CoverageTypes, want) {
		t.Fatalf("coverage = %v, want %v", got.CoverageTypes, want)
	}
	if len(got.Exclusions) != 0 {
		t.Fatalf("exclusions = %v, want none", got.Exclusions)
	}
	if want := []string{"insuring_agreement"}; !reflect.DeepEqual(got.KeyClauses, want) {
		t.Fatalf("key clauses = %v, want %v", got.KeyClauses, want)
	}
	if want := 3.0 / float64(ExpectedPolicyEntries); diff(got.ExtractionConfidence, want) > 1e-9 {
		t.Fatalf("confidence = %v, want %v", got.ExtractionConfidence, want)
	}
}

func TestAnalyzePolicyFuzzyMisspelling(t *testing.T) {
	tax := DefaultTaxonomy()
	got, err := AnalyzePolicy(tax, "Colision damage is insured under this policy.")
	if err != nil {
		t.Fatalf("AnalyzePolicy: %v", err)
	}
	if !containsString(got.CoverageTypes, "collision") {
		t.Fatalf("coverage = %v, want collision via fuzzy match", got.CoverageTypes)
	}
}

func TestAnalyzePolicyNoMatches(t *testing.T) {
	tax := DefaultTaxonomy()
	got, err := AnalyzePolicy(tax, "lorem ipsum consectetur adipiscing elit")
	if err != nil {
		t.Fatalf("AnalyzePolicy: %v", err)
	}
	if len(got.CoverageTypes) != 0 || len(got.Exclusions) != 0 || len(got.KeyClauses) != 0 {
		t.Fatalf("expected empty extraction, got %+v", got)
	}
	if got.ExtractionConfidence != 0 {
		t.Fatalf("confidence = %v, want 0", got.ExtractionConfidence)
	}
}

func TestAnalyzePolicyConfidenceCapped(t *testing.T) {
	tax := DefaultTaxonomy()
	text := "collision comprehensive liability uninsured motorist medical payments " +
		"personal injury protection property damage water damage fire theft dwelling " +
		"loss of use flood mold deductible appraisal subrogation"
	got, err := AnalyzePolicy(tax, text)
	if err != nil {
		t.Fatalf("AnalyzePolicy: %v", err)
	}
	if got.ExtractionConfidence != 1.0 {
		t.Fatalf("confidence = %v, want capped at 1.0", got.ExtractionConfidence)
	}
}

func TestAnalyzePolicyRejectsUnusableText(t *testing.T) {
	tax := DefaultTaxonomy()
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"invalid utf8", string([]byte{0xff, 0xfe, 'p', 'o', 'l'})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := AnalyzePolicy(tax, c.text)
			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("err = %v, want ExtractionError", err)
			}
			if extractionErr.Doc != "policy" {
				t.Fatalf("doc = %q, want policy", extractionErr.Doc)
			}
		})
	}
}
