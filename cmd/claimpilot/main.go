package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
	"github.com/joelkehle/claimpilot/internal/caseapi"
	"github.com/joelkehle/claimpilot/internal/casestore"
	"github.com/joelkehle/claimpilot/internal/telemetry"
)

func main() {
	var (
		addr         = flag.String("addr", ":8100", "HTTP listen address")
		dbPath       = flag.String("db", "./claimpilot.db", "SQLite database path (empty for in-memory only)")
		calibration  = flag.String("calibration", "", "Path to historical case calibration JSON (default: built-in records)")
		docsState    = flag.String("docs-state", "./documents.json", "Path for the uploaded document snapshot (empty to disable)")
		otlpEndpoint = flag.String("otlp-endpoint", "", "OTLP HTTP endpoint for trace export (empty to disable)")
		chromePath   = flag.String("chrome-path", "", "Chromium binary for PDF rendering (default: autodetect)")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Resolve endpoint: --otlp-endpoint flag > CLAIMPILOT_OTLP_ENDPOINT env > off.
	endpoint := *otlpEndpoint
	if endpoint == "" {
		endpoint = os.Getenv("CLAIMPILOT_OTLP_ENDPOINT")
	}
	shutdownTracing, err := telemetry.Init(ctx, "claimpilot", endpoint)
	if err != nil {
		log.Fatalf("init telemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	tax, err := loadTaxonomy(*calibration)
	if err != nil {
		log.Fatalf("load calibration: %v", err)
	}
	pipeline, err := caseanalysis.NewPipeline(tax)
	if err != nil {
		log.Fatal(err)
	}

	var cases casestore.API
	if *dbPath == "" {
		cases = casestore.NewStore(casestore.Config{})
	} else {
		sqlStore, err := casestore.NewSQLiteStore(*dbPath, casestore.Config{})
		if err != nil {
			log.Fatalf("open case store: %v", err)
		}
		defer sqlStore.Close()
		cases = sqlStore
	}

	docs, err := caseapi.NewDocumentStore(tax, *docsState)
	if err != nil {
		log.Fatalf("open document store: %v", err)
	}

	handler := caseapi.NewServer(pipeline, cases, docs, *chromePath)

	log.Printf("claimpilot listening on %s (db=%s)", *addr, *dbPath)
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func loadTaxonomy(calibrationPath string) (*caseanalysis.Taxonomy, error) {
	if calibrationPath == "" {
		return caseanalysis.DefaultTaxonomy(), nil
	}
	records, err := caseanalysis.LoadCalibrationFile(calibrationPath)
	if err != nil {
		return nil, err
	}
	return caseanalysis.TaxonomyWithCalibration(records), nil
}
