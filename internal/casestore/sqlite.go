package casestore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
)

// SQLiteStore implements casestore.API with SQLite-backed persistence.
// It delegates the bookkeeping to an embedded in-memory Store and persists
// every case mutation with write-through semantics, so a restart restores
// the full case book.
type SQLiteStore struct {
	inner *Store
	db    *sqlx.DB
	mu    sync.Mutex
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cases (
	case_id          TEXT PRIMARY KEY,
	case_type        TEXT NOT NULL DEFAULT 'general',
	policy_number    TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'active',
	strategy_used    TEXT NOT NULL DEFAULT '',
	success_score    REAL NOT NULL DEFAULT 0,
	estimated_payout REAL NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	analysis         TEXT NOT NULL DEFAULT '{}',
	position         INTEGER NOT NULL DEFAULT 0
);
`

func NewSQLiteStore(dbPath string, cfg Config) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &SQLiteStore{
		inner: NewStore(cfg),
		db:    db,
	}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadAll() error {
	rows, err := s.db.Query(`SELECT case_id, case_type, policy_number, status, strategy_used,
		success_score, estimated_payout, created_at, updated_at, analysis
		FROM cases ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec CaseRecord
		var caseType, createdAt, updatedAt, analysisJSON string
		if err := rows.Scan(&rec.CaseID, &caseType, &rec.PolicyNumber, &rec.Status, &rec.StrategyUsed,
			&rec.SuccessScore, &rec.EstimatedPayout, &createdAt, &updatedAt, &analysisJSON); err != nil {
			return err
		}
		rec.CaseType = caseanalysis.ClaimType(caseType)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		if analysisJSON != "" {
			_ = json.Unmarshal([]byte(analysisJSON), &rec.Analysis)
		}
		s.inner.cases[rec.CaseID] = &rec
		s.inner.order = append(s.inner.order, rec.CaseID)
	}
	return rows.Err()
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (s *SQLiteStore) saveCase(rec *CaseRecord, position int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO cases (case_id, case_type, policy_number, status, strategy_used,
		success_score, estimated_payout, created_at, updated_at, analysis, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CaseID,
		string(rec.CaseType),
		rec.PolicyNumber,
		string(rec.Status),
		rec.StrategyUsed,
		rec.SuccessScore,
		rec.EstimatedPayout,
		timeToString(rec.CreatedAt),
		timeToString(rec.UpdatedAt),
		marshalJSON(rec.Analysis),
		position,
	)
	return err
}

func (s *SQLiteStore) positionOf(caseID string) int {
	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()
	for i, id := range s.inner.order {
		if id == caseID {
			return i
		}
	}
	return len(s.inner.order)
}

// --- casestore.API implementation ---

func (s *SQLiteStore) CreateCase(a caseanalysis.CaseAnalysis) (*CaseRecord, error) {
	rec, err := s.inner.CreateCase(a)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if perr := s.saveCase(rec, s.positionOf(rec.CaseID)); perr != nil {
		return nil, perr
	}
	return rec, nil
}

func (s *SQLiteStore) GetCase(caseID string) (*CaseRecord, error) {
	return s.inner.GetCase(caseID)
}

func (s *SQLiteStore) ListCases() []CaseSummary {
	return s.inner.ListCases()
}

func (s *SQLiteStore) UpdateStatus(caseID string, status CaseStatus) (*CaseRecord, error) {
	rec, err := s.inner.UpdateStatus(caseID, status)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if perr := s.saveCase(rec, s.positionOf(rec.CaseID)); perr != nil {
		return nil, perr
	}
	return rec, nil
}

func (s *SQLiteStore) DeleteCase(caseID string) error {
	if err := s.inner.DeleteCase(caseID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM cases WHERE case_id = ?`, caseID)
	return err
}

// Ensure SQLiteStore satisfies the API interface at compile time.
var _ API = (*SQLiteStore)(nil)
