package caseapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
	"github.com/joelkehle/claimpilot/internal/casestore"
)

type Server struct {
	pipeline    *caseanalysis.Pipeline
	cases       casestore.API
	docs        *DocumentStore
	pdfRenderer LetterPDFRenderer
}

func NewServer(pipeline *caseanalysis.Pipeline, cases casestore.API, docs *DocumentStore, chromePath string) http.Handler {
	return newServer(pipeline, cases, docs, NewChromiumPDFRenderer(chromePath))
}

func newServer(pipeline *caseanalysis.Pipeline, cases casestore.API, docs *DocumentStore, pdfRenderer LetterPDFRenderer) http.Handler {
	s := &Server{
		pipeline:    pipeline,
		cases:       cases,
		docs:        docs,
		pdfRenderer: pdfRenderer,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/documents", s.handleDocuments)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/letter", s.handleLetter)
	mux.HandleFunc("/api/cases", s.handleCases)
	mux.HandleFunc("/api/cases/", s.handleCaseByID)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{
		"status": "ok",
		"components": map[string]any{
			"documents": len(s.docs.List()),
			"cases":     len(s.cases.ListCases()),
		},
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, 400, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 400, "file field is required")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(io.LimitReader(file, 10<<20))
	if err != nil {
		writeError(w, 400, "failed to read uploaded file")
		return
	}
	content := string(blob)
	if strings.TrimSpace(content) == "" || !utf8.ValidString(content) {
		writeError(w, 400, "file must be non-empty UTF-8 text")
		return
	}

	info, err := s.docs.Put(header.Filename, content)
	if err != nil {
		if errors.Is(err, errUnusableDocument) || errors.Is(err, errInvalidFilename) {
			writeError(w, 400, err.Error())
			return
		}
		log.Printf("store document %s: %v", header.Filename, err)
		writeError(w, 500, "failed to store document")
		return
	}
	writeJSON(w, 200, info)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{"documents": s.docs.List()})
}

type analyzeRequest struct {
	Filenames    []string `json:"filenames"`
	CaseID       string   `json:"case_id"`
	PolicyNumber string   `json:"policy_number"`
	ClaimantName string   `json:"claimant_name"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid request body")
		return
	}
	input, ok := s.collectCaseInput(req, w)
	if !ok {
		return
	}
	analysis, ok := s.runAnalysis(r.Context(), w, input)
	if !ok {
		return
	}
	writeJSON(w, 200, analysis)
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid request body")
		return
	}
	input, ok := s.collectCaseInput(req, w)
	if !ok {
		return
	}
	analysis, ok := s.runAnalysis(r.Context(), w, input)
	if !ok {
		return
	}
	s.writeLetter(w, analysis)
}

func (s *Server) writeLetter(w http.ResponseWriter, a caseanalysis.CaseAnalysis) {
	letter := s.pipeline.DraftLetter(a)
	writeJSON(w, 200, map[string]any{
		"case_id":      a.CaseID,
		"subject":      letter.Subject,
		"letter":       letter.Text(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

type saveCaseRequest struct {
	CaseID       string                    `json:"case_id"`
	PolicyNumber string                    `json:"policy_number"`
	Analysis     caseanalysis.CaseAnalysis `json:"analysis"`
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, map[string]any{"cases": s.cases.ListCases()})
	case http.MethodPost:
		var req saveCaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, "invalid request body")
			return
		}
		// A completed analysis always carries a strategy and at least
		// one leverage point.
		if req.Analysis.RecommendedStrategy.Name == "" || len(req.Analysis.LeveragePoints) == 0 {
			writeError(w, 400, "analysis field must hold a completed case analysis")
			return
		}
		if v := strings.TrimSpace(req.CaseID); v != "" {
			req.Analysis.CaseID = v
		}
		if v := strings.TrimSpace(req.PolicyNumber); v != "" {
			req.Analysis.PolicyNumber = v
		}
		rec, err := s.cases.CreateCase(req.Analysis)
		if err != nil {
			log.Printf("create case %s: %v", req.Analysis.CaseID, err)
			writeError(w, 500, "failed to save case")
			return
		}
		writeJSON(w, 200, rec)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCaseByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/cases/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		writeError(w, 400, "case id is required")
		return
	}
	parts := strings.SplitN(path, "/", 2)
	caseID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.getCase(w, caseID)
		case http.MethodDelete:
			s.deleteCase(w, caseID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "status":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.updateCaseStatus(w, r, caseID)
	case "letter":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.caseLetter(w, caseID)
	case "letter-pdf":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.caseLetterPDF(w, r, caseID)
	case "report":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.caseReport(w, caseID)
	default:
		writeError(w, 404, "not found")
	}
}

func (s *Server) getCase(w http.ResponseWriter, caseID string) {
	rec, ok := s.loadCase(w, caseID)
	if !ok {
		return
	}
	writeJSON(w, 200, rec)
}

func (s *Server) deleteCase(w http.ResponseWriter, caseID string) {
	if err := s.cases.DeleteCase(caseID); err != nil {
		if errors.Is(err, casestore.ErrNotFound) {
			writeError(w, 404, "case not found")
			return
		}
		log.Printf("delete case %s: %v", caseID, err)
		writeError(w, 500, "failed to delete case")
		return
	}
	writeJSON(w, 200, map[string]any{"case_id": caseID, "status": "deleted"})
}

func (s *Server) updateCaseStatus(w http.ResponseWriter, r *http.Request, caseID string) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		writeError(w, 400, "status field is required")
		return
	}
	rec, err := s.cases.UpdateStatus(caseID, casestore.CaseStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, casestore.ErrNotFound):
			writeError(w, 404, "case not found")
		case errors.Is(err, casestore.ErrInvalidStatus):
			writeError(w, 400, err.Error())
		default:
			log.Printf("update case %s status: %v", caseID, err)
			writeError(w, 500, "failed to update case")
		}
		return
	}
	writeJSON(w, 200, rec)
}

func (s *Server) caseLetter(w http.ResponseWriter, caseID string) {
	rec, ok := s.loadCase(w, caseID)
	if !ok {
		return
	}
	s.writeLetter(w, rec.Analysis)
}

func (s *Server) caseLetterPDF(w http.ResponseWriter, r *http.Request, caseID string) {
	if s.pdfRenderer == nil {
		writeError(w, 503, "pdf renderer unavailable")
		return
	}
	rec, ok := s.loadCase(w, caseID)
	if !ok {
		return
	}
	letter := s.pipeline.DraftLetter(rec.Analysis)
	pdf, err := s.pdfRenderer.Render(r.Context(), letter.Text())
	if err != nil {
		log.Printf("render letter pdf failed case=%s err=%v", caseID, err)
		writeError(w, 500, "failed to render pdf")
		return
	}
	filename := fmt.Sprintf("negotiation_letter_%s.pdf", sanitizeFilename(rec.CaseID))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(200)
	_, _ = w.Write(pdf)
}

func (s *Server) caseReport(w http.ResponseWriter, caseID string) {
	rec, ok := s.loadCase(w, caseID)
	if !ok {
		return
	}
	report := caseanalysis.BuildCaseReport(rec.Analysis)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(200)
	_, _ = w.Write([]byte(report))
}

// collectCaseInput joins the selected documents into one pipeline input.
// Policy documents feed the policy text; everything else is claim material.
func (s *Server) collectCaseInput(req analyzeRequest, w http.ResponseWriter) (caseanalysis.CaseInput, bool) {
	if len(req.Filenames) == 0 {
		writeError(w, 400, "filenames field is required")
		return caseanalysis.CaseInput{}, false
	}
	var policyParts, claimParts []string
	for _, name := range req.Filenames {
		doc, ok := s.docs.Get(strings.TrimSpace(name))
		if !ok {
			writeError(w, 404, fmt.Sprintf("document not found: %s", name))
			return caseanalysis.CaseInput{}, false
		}
		if doc.Category == CategoryPolicyDocument {
			policyParts = append(policyParts, doc.Content)
		} else {
			claimParts = append(claimParts, doc.Content)
		}
	}
	if len(policyParts) == 0 {
		writeError(w, 400, "no policy document among the selected files")
		return caseanalysis.CaseInput{}, false
	}
	if len(claimParts) == 0 {
		writeError(w, 400, "no claim document among the selected files")
		return caseanalysis.CaseInput{}, false
	}

	caseID := strings.TrimSpace(req.CaseID)
	if caseID == "" {
		caseID = uuid.NewString()
	}
	return caseanalysis.CaseInput{
		CaseID:       caseID,
		PolicyNumber: strings.TrimSpace(req.PolicyNumber),
		ClaimantName: strings.TrimSpace(req.ClaimantName),
		PolicyText:   strings.Join(policyParts, "\n\n"),
		ClaimText:    strings.Join(claimParts, "\n\n"),
	}, true
}

func (s *Server) runAnalysis(ctx context.Context, w http.ResponseWriter, input caseanalysis.CaseInput) (caseanalysis.CaseAnalysis, bool) {
	analysis, err := s.pipeline.Run(ctx, input)
	if err != nil {
		if caseanalysis.IsExtractionError(err) {
			writeError(w, 400, err.Error())
			return caseanalysis.CaseAnalysis{}, false
		}
		log.Printf("analyze case %s failed stage=%s err=%v", input.CaseID, caseanalysis.StageNameFromError(err), err)
		writeError(w, 500, "analysis failed")
		return caseanalysis.CaseAnalysis{}, false
	}
	return analysis, true
}

func (s *Server) loadCase(w http.ResponseWriter, caseID string) (*casestore.CaseRecord, bool) {
	rec, err := s.cases.GetCase(caseID)
	if err != nil {
		if errors.Is(err, casestore.ErrNotFound) {
			writeError(w, 404, "case not found")
			return nil, false
		}
		log.Printf("load case %s: %v", caseID, err)
		writeError(w, 500, "failed to load case")
		return nil, false
	}
	return rec, true
}

func sanitizeFilename(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "case"
	}
	v = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, v)
	return v
}

type LetterPDFRenderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}
