package casestore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
)

type CaseStatus string

const (
	StatusActive    CaseStatus = "active"
	StatusPending   CaseStatus = "pending"
	StatusCompleted CaseStatus = "completed"
	StatusCancelled CaseStatus = "cancelled"
)

var (
	ErrNotFound      = errors.New("case not found")
	ErrInvalidStatus = errors.New("invalid case status")
)

func validStatus(s CaseStatus) bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type CaseRecord struct {
	CaseID          string                    `json:"case_id"`
	CaseType        caseanalysis.ClaimType    `json:"case_type"`
	PolicyNumber    string                    `json:"policy_number,omitempty"`
	Status          CaseStatus                `json:"status"`
	StrategyUsed    string                    `json:"strategy_used"`
	SuccessScore    float64                   `json:"success_score"`
	EstimatedPayout float64                   `json:"estimated_payout"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
	Analysis        caseanalysis.CaseAnalysis `json:"analysis"`
}

type CaseSummary struct {
	CaseID          string                 `json:"case_id"`
	CaseType        caseanalysis.ClaimType `json:"case_type"`
	CreatedAt       time.Time              `json:"created_at"`
	StrategyUsed    string                 `json:"strategy_used"`
	Status          CaseStatus             `json:"status"`
	SuccessScore    float64                `json:"success_score"`
	EstimatedPayout float64                `json:"estimated_payout"`
}

// API is the case storage interface used by the HTTP layer.
// It allows swapping in-memory and persistent implementations.
type API interface {
	CreateCase(a caseanalysis.CaseAnalysis) (*CaseRecord, error)
	GetCase(caseID string) (*CaseRecord, error)
	ListCases() []CaseSummary
	UpdateStatus(caseID string, status CaseStatus) (*CaseRecord, error)
	DeleteCase(caseID string) error
}

type Config struct {
	Clock func() time.Time
}

type Store struct {
	mu sync.Mutex

	cfg   Config
	cases map[string]*CaseRecord
	order []string
}

func NewStore(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Store{
		cfg:   cfg,
		cases: map[string]*CaseRecord{},
	}
}

// CreateCase files a completed analysis as a case. The analysis's own case
// ID is kept when present; re-filing an existing ID replaces the analysis
// but keeps the original creation time.
func (s *Store) CreateCase(a caseanalysis.CaseAnalysis) (*CaseRecord, error) {
	caseID := strings.TrimSpace(a.CaseID)
	if caseID == "" {
		caseID = uuid.NewString()
		a.CaseID = caseID
	}
	now := s.cfg.Clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.cases[caseID]
	if !exists {
		rec = &CaseRecord{
			CaseID:    caseID,
			Status:    StatusActive,
			CreatedAt: now,
		}
		s.cases[caseID] = rec
		s.order = append(s.order, caseID)
	}
	rec.CaseType = a.ClaimAnalysis.ClaimType
	rec.PolicyNumber = a.PolicyNumber
	rec.StrategyUsed = a.RecommendedStrategy.Name
	rec.SuccessScore = a.SuccessProbability
	rec.EstimatedPayout = a.EstimatedPayoutRange.Expected
	rec.UpdatedAt = now
	rec.Analysis = a

	cp := *rec
	return &cp, nil
}

func (s *Store) GetCase(caseID string) (*CaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cases[caseID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// ListCases returns summaries newest-first.
func (s *Store) ListCases() []CaseSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CaseSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		rec := s.cases[s.order[i]]
		out = append(out, CaseSummary{
			CaseID:          rec.CaseID,
			CaseType:        rec.CaseType,
			CreatedAt:       rec.CreatedAt,
			StrategyUsed:    rec.StrategyUsed,
			Status:          rec.Status,
			SuccessScore:    rec.SuccessScore,
			EstimatedPayout: rec.EstimatedPayout,
		})
	}
	return out
}

func (s *Store) UpdateStatus(caseID string, status CaseStatus) (*CaseRecord, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cases[caseID]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Status = status
	rec.UpdatedAt = s.cfg.Clock().UTC()
	cp := *rec
	return &cp, nil
}

func (s *Store) DeleteCase(caseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cases[caseID]; !ok {
		return ErrNotFound
	}
	delete(s.cases, caseID)
	for i, id := range s.order {
		if id == caseID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ API = (*Store)(nil)
