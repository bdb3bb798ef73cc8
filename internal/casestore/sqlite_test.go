package casestore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) (*SQLiteStore, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	dbPath := filepath.Join(t.TempDir(), "cases.db")
	store, err := NewSQLiteStore(dbPath, Config{Clock: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, &now
}

func TestSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roundtrip.db")
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	cfg := Config{Clock: func() time.Time { return now }}

	// Open, write cases, close.
	s1, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if _, err := s1.CreateCase(sampleAnalysis("case-1")); err != nil {
		t.Fatalf("create case-1: %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := s1.CreateCase(sampleAnalysis("case-2")); err != nil {
		t.Fatalf("create case-2: %v", err)
	}
	s1.Close()

	// Reopen and verify the case book survived.
	s2, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("reopen sqlite store: %v", err)
	}
	defer s2.Close()

	summaries := s2.ListCases()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 cases after restore, got %d", len(summaries))
	}
	if summaries[0].CaseID != "case-2" || summaries[1].CaseID != "case-1" {
		t.Fatalf("restore lost the newest-first order: %s, %s", summaries[0].CaseID, summaries[1].CaseID)
	}

	rec, err := s2.GetCase("case-1")
	if err != nil {
		t.Fatalf("get case-1 after restore: %v", err)
	}
	if rec.StrategyUsed != "Market Value Recalculation" {
		t.Fatalf("strategy = %q after restore", rec.StrategyUsed)
	}
	if rec.Analysis.ClaimAnalysis.DamagesClaimed == nil || *rec.Analysis.ClaimAnalysis.DamagesClaimed != 2800 {
		t.Fatalf("analysis damages lost in restore: %+v", rec.Analysis.ClaimAnalysis.DamagesClaimed)
	}
	if !rec.CreatedAt.Equal(time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("created at = %v after restore", rec.CreatedAt)
	}
}

func TestSQLiteStatusUpdatePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "status.db")
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	cfg := Config{Clock: func() time.Time { return now }}

	s1, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if _, err := s1.CreateCase(sampleAnalysis("case-1")); err != nil {
		t.Fatalf("create case: %v", err)
	}
	if _, err := s1.UpdateStatus("case-1", StatusCompleted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	s1.Close()

	s2, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("reopen sqlite store: %v", err)
	}
	defer s2.Close()

	rec, err := s2.GetCase("case-1")
	if err != nil {
		t.Fatalf("get case after restore: %v", err)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("status = %s after restore, want completed", rec.Status)
	}
}

func TestSQLiteDeletePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "delete.db")
	cfg := Config{}

	s1, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if _, err := s1.CreateCase(sampleAnalysis("case-1")); err != nil {
		t.Fatalf("create case: %v", err)
	}
	if err := s1.DeleteCase("case-1"); err != nil {
		t.Fatalf("delete case: %v", err)
	}
	s1.Close()

	s2, err := NewSQLiteStore(dbPath, cfg)
	if err != nil {
		t.Fatalf("reopen sqlite store: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetCase("case-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after persisted delete", err)
	}
	if got := s2.ListCases(); len(got) != 0 {
		t.Fatalf("expected empty case book, got %d entries", len(got))
	}
}

func TestSQLiteInvalidStatusNotPersisted(t *testing.T) {
	store, _ := newTestSQLiteStore(t)
	if _, err := store.CreateCase(sampleAnalysis("case-1")); err != nil {
		t.Fatalf("create case: %v", err)
	}
	if _, err := store.UpdateStatus("case-1", CaseStatus("archived")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	rec, err := store.GetCase("case-1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if rec.Status != StatusActive {
		t.Fatalf("status = %s, want active untouched", rec.Status)
	}
}
