package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
	"github.com/joelkehle/claimpilot/internal/caseapi"
)

func main() {
	inputPath := flag.String("input", "", "Path to a saved case analysis JSON")
	outputPath := flag.String("output", "", "Path to write the letter text (defaults to stdout)")
	pdfPath := flag.String("pdf", "", "Optional path to write the letter as PDF (requires Chromium)")
	chromePath := flag.String("chrome-path", "", "Chromium binary for PDF rendering (default: autodetect)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	blob, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	var analysis caseanalysis.CaseAnalysis
	if err := json.Unmarshal(blob, &analysis); err != nil {
		log.Fatalf("decode analysis JSON: %v", err)
	}

	letter := caseanalysis.DraftLetter(caseanalysis.LetterInput{
		CaseID:       analysis.CaseID,
		PolicyNumber: analysis.PolicyNumber,
		ClaimantName: analysis.ClaimantName,
		Claim:        analysis.ClaimAnalysis,
		Points:       analysis.LeveragePoints,
		Strategy:     analysis.RecommendedStrategy,
		Payout:       analysis.EstimatedPayoutRange,
	})

	if err := writeLetter(*outputPath, letter.Text()); err != nil {
		log.Fatalf("write letter: %v", err)
	}

	if *pdfPath != "" {
		renderer := caseapi.NewChromiumPDFRenderer(*chromePath)
		pdf, err := renderer.Render(context.Background(), letter.Text())
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
	}
}

func writeLetter(outputPath, text string) error {
	if outputPath == "" {
		_, err := fmt.Print(text)
		return err
	}
	return os.WriteFile(outputPath, []byte(text), 0o644)
}
