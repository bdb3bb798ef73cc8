package caseapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
)

const (
	CategoryPolicyDocument  = "policy_document"
	CategoryDenialLetter    = "denial_letter"
	CategorySettlementOffer = "settlement_offer"
	CategoryClaimForm       = "claim_form"
	CategoryCorrespondence  = "correspondence"
)

var claimFormPhrases = []string{"claim form", "claim number", "date of loss"}

type Document struct {
	Filename   string    `json:"filename"`
	Category   string    `json:"category"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
	Content    string    `json:"content"`
}

// DocumentInfo is the document shape returned over HTTP; content stays
// server-side.
type DocumentInfo struct {
	Filename   string    `json:"filename"`
	Category   string    `json:"category"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

var (
	errUnusableDocument = errors.New("document must be non-empty UTF-8 text")
	errInvalidFilename  = errors.New("invalid filename")
)

// DocumentStore keeps uploaded documents in memory and snapshots them to a
// JSON file so uploads survive a restart. An empty state path disables the
// snapshot.
type DocumentStore struct {
	mu sync.Mutex

	tax       *caseanalysis.Taxonomy
	statePath string
	clock     func() time.Time

	docs  map[string]*Document
	order []string
}

type persistedDocuments struct {
	Documents map[string]*Document `json:"documents"`
	Order     []string             `json:"order"`
}

func NewDocumentStore(tax *caseanalysis.Taxonomy, statePath string) (*DocumentStore, error) {
	s := &DocumentStore{
		tax:       tax,
		statePath: statePath,
		clock:     time.Now,
		docs:      map[string]*Document{},
	}
	if statePath == "" {
		return s, nil
	}
	state, err := loadDocumentState(statePath)
	if err != nil {
		return nil, fmt.Errorf("load document state: %w", err)
	}
	s.docs = state.Documents
	s.order = state.Order
	return s, nil
}

func loadDocumentState(path string) (persistedDocuments, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return persistedDocuments{Documents: map[string]*Document{}}, nil
		}
		return persistedDocuments{}, err
	}
	var state persistedDocuments
	if err := json.Unmarshal(blob, &state); err != nil {
		return persistedDocuments{}, err
	}
	if state.Documents == nil {
		state.Documents = map[string]*Document{}
	}
	return state, nil
}

func saveDocumentState(path string, state persistedDocuments) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	blob, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Put stores an uploaded document under its base filename, classifying it
// from its content. Re-uploading a filename replaces the document.
func (s *DocumentStore) Put(filename, content string) (DocumentInfo, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return DocumentInfo{}, fmt.Errorf("%w %q", errInvalidFilename, filename)
	}
	if strings.TrimSpace(content) == "" || !utf8.ValidString(content) {
		return DocumentInfo{}, errUnusableDocument
	}

	doc := &Document{
		Filename:   name,
		Category:   classifyDocument(s.tax, content),
		SizeBytes:  int64(len(content)),
		UploadedAt: s.clock().UTC(),
		Content:    content,
	}

	s.mu.Lock()
	if _, exists := s.docs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.docs[name] = doc
	state := s.snapshotLocked()
	s.mu.Unlock()

	if s.statePath != "" {
		if err := saveDocumentState(s.statePath, state); err != nil {
			return DocumentInfo{}, fmt.Errorf("save document state: %w", err)
		}
	}
	return doc.info(), nil
}

func (s *DocumentStore) Get(filename string) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[filename]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// List returns document metadata newest-first.
func (s *DocumentStore) List() []DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DocumentInfo, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.docs[s.order[i]].info())
	}
	return out
}

func (s *DocumentStore) snapshotLocked() persistedDocuments {
	docs := make(map[string]*Document, len(s.docs))
	for k, v := range s.docs {
		cp := *v
		docs[k] = &cp
	}
	return persistedDocuments{
		Documents: docs,
		Order:     append([]string(nil), s.order...),
	}
}

func (d *Document) info() DocumentInfo {
	return DocumentInfo{
		Filename:   d.Filename,
		Category:   d.Category,
		SizeBytes:  d.SizeBytes,
		UploadedAt: d.UploadedAt,
	}
}

// classifyDocument buckets a document by the first phrase list it matches.
// Policy markers win over denial markers so a policy that quotes a denial
// stays a policy document.
func classifyDocument(tax *caseanalysis.Taxonomy, content string) string {
	text := strings.ToLower(content)
	if containsAny(text, claimTypePhrases(tax, caseanalysis.ClaimPolicyDocument)) {
		return CategoryPolicyDocument
	}
	if containsAny(text, claimTypePhrases(tax, caseanalysis.ClaimDenialLetter)) {
		return CategoryDenialLetter
	}
	if containsAny(text, claimTypePhrases(tax, caseanalysis.ClaimSettlementOffer)) {
		return CategorySettlementOffer
	}
	if containsAny(text, claimFormPhrases) {
		return CategoryClaimForm
	}
	return CategoryCorrespondence
}

func claimTypePhrases(tax *caseanalysis.Taxonomy, t caseanalysis.ClaimType) []string {
	for _, e := range tax.ClaimTypes {
		if e.Type == t {
			return e.Phrases
		}
	}
	return nil
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
