package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
)

func main() {
	policyPath := flag.String("policy", "", "Path to the policy document text file")
	claimPath := flag.String("claim", "", "Path to the claim document text file")
	caseID := flag.String("case-id", "", "Case ID (default: generated)")
	policyNumber := flag.String("policy-number", "", "Policy number carried into the letter and report")
	claimantName := flag.String("claimant", "", "Claimant name used to sign the letter")
	calibration := flag.String("calibration", "", "Path to historical case calibration JSON")
	format := flag.String("format", "json", "Output format: json, report, or letter")
	outputPath := flag.String("output", "", "Path to write output (defaults to stdout)")
	flag.Parse()

	if *policyPath == "" {
		log.Fatal("missing required -policy")
	}
	if *claimPath == "" {
		log.Fatal("missing required -claim")
	}

	policyText, err := os.ReadFile(*policyPath)
	if err != nil {
		log.Fatalf("read policy document: %v", err)
	}
	claimText, err := os.ReadFile(*claimPath)
	if err != nil {
		log.Fatalf("read claim document: %v", err)
	}

	tax := caseanalysis.DefaultTaxonomy()
	if *calibration != "" {
		records, err := caseanalysis.LoadCalibrationFile(*calibration)
		if err != nil {
			log.Fatalf("load calibration: %v", err)
		}
		tax = caseanalysis.TaxonomyWithCalibration(records)
	}
	pipeline, err := caseanalysis.NewPipeline(tax)
	if err != nil {
		log.Fatal(err)
	}

	id := *caseID
	if id == "" {
		id = uuid.NewString()
	}
	analysis, err := pipeline.Run(context.Background(), caseanalysis.CaseInput{
		CaseID:       id,
		PolicyNumber: *policyNumber,
		ClaimantName: *claimantName,
		PolicyText:   string(policyText),
		ClaimText:    string(claimText),
	})
	if err != nil {
		log.Fatalf("analyze case: %v", err)
	}

	var out string
	switch *format {
	case "json":
		blob, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			log.Fatalf("encode analysis: %v", err)
		}
		out = string(blob) + "\n"
	case "report":
		out = caseanalysis.BuildCaseReport(analysis)
	case "letter":
		out = pipeline.DraftLetter(analysis).Text()
	default:
		log.Fatalf("unknown -format %q (want json, report, or letter)", *format)
	}

	if err := writeOutput(*outputPath, out); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func writeOutput(outputPath, content string) error {
	if outputPath == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(outputPath, []byte(content), 0o644)
}
