package caseapi

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/joelkehle/claimpilot/internal/caseanalysis"
)

func newTestDocumentStore(t *testing.T, statePath string) *DocumentStore {
	t.Helper()
	docs, err := NewDocumentStore(caseanalysis.DefaultTaxonomy(), statePath)
	if err != nil {
		t.Fatalf("new document store: %v", err)
	}
	return docs
}

func TestClassifyDocument(t *testing.T) {
	tax := caseanalysis.DefaultTaxonomy()
	cases := []struct {
		name string
		text string
		want string
	}{
		{"policy", "Declarations page. Policy period 2024-01-01 through 2025-01-01.", CategoryPolicyDocument},
		{"denial", "We regret to inform you that your claim has been denied.", CategoryDenialLetter},
		{"settlement", "We are prepared to offer $2,000 to resolve this claim as a final offer.", CategorySettlementOffer},
		{"claim form", "Claim number 41-2207. Date of loss: 2024-03-15.", CategoryClaimForm},
		{"correspondence", "Following up on our phone call from Tuesday about the adjuster visit.", CategoryCorrespondence},
		{"policy wins over denial", "Insuring agreement: we will pay for covered losses even where earlier claims were denied.", CategoryPolicyDocument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyDocument(tax, tc.text); got != tc.want {
				t.Fatalf("classifyDocument(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestDocumentStorePutListGet(t *testing.T) {
	docs := newTestDocumentStore(t, "")

	if _, err := docs.Put("policy.txt", testPolicyText); err != nil {
		t.Fatalf("put policy: %v", err)
	}
	if _, err := docs.Put("denial.txt", testDenialText); err != nil {
		t.Fatalf("put denial: %v", err)
	}

	list := docs.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(list))
	}
	if list[0].Filename != "denial.txt" {
		t.Fatalf("expected denial.txt first, got %s", list[0].Filename)
	}
	if list[1].Category != CategoryPolicyDocument {
		t.Fatalf("expected policy_document, got %s", list[1].Category)
	}

	doc, ok := docs.Get("policy.txt")
	if !ok {
		t.Fatal("expected policy.txt in store")
	}
	if doc.Content != testPolicyText {
		t.Fatalf("content mismatch: %q", doc.Content)
	}
	if _, ok := docs.Get("missing.txt"); ok {
		t.Fatal("expected missing.txt to be absent")
	}
}

func TestDocumentStorePutReplaces(t *testing.T) {
	docs := newTestDocumentStore(t, "")

	if _, err := docs.Put("a.txt", testPolicyText); err != nil {
		t.Fatal(err)
	}
	info, err := docs.Put("a.txt", testDenialText)
	if err != nil {
		t.Fatal(err)
	}
	if info.Category != CategoryDenialLetter {
		t.Fatalf("expected reclassified category denial_letter, got %s", info.Category)
	}
	if list := docs.List(); len(list) != 1 {
		t.Fatalf("expected 1 document after replace, got %d", len(list))
	}
	doc, _ := docs.Get("a.txt")
	if doc.Content != testDenialText {
		t.Fatalf("expected replaced content, got %q", doc.Content)
	}
}

func TestDocumentStoreStripsDirectoryPrefix(t *testing.T) {
	docs := newTestDocumentStore(t, "")

	info, err := docs.Put("../../uploads/statement.txt", "Following up on our phone call.")
	if err != nil {
		t.Fatal(err)
	}
	if info.Filename != "statement.txt" {
		t.Fatalf("expected statement.txt, got %s", info.Filename)
	}
	if _, ok := docs.Get("statement.txt"); !ok {
		t.Fatal("expected document stored under base name")
	}
}

func TestDocumentStoreRejectsUnusableContent(t *testing.T) {
	docs := newTestDocumentStore(t, "")

	for _, content := range []string{"", "   \n\t", string([]byte{0xff, 0xfe, 0x41})} {
		if _, err := docs.Put("bad.txt", content); !errors.Is(err, errUnusableDocument) {
			t.Fatalf("content %q: expected errUnusableDocument, got %v", content, err)
		}
	}

	for _, name := range []string{"", "   "} {
		if _, err := docs.Put(name, "usable text"); !errors.Is(err, errInvalidFilename) {
			t.Fatalf("filename %q: expected errInvalidFilename, got %v", name, err)
		}
	}
}

func TestDocumentStoreSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.json")

	docs := newTestDocumentStore(t, path)
	if _, err := docs.Put("policy.txt", testPolicyText); err != nil {
		t.Fatal(err)
	}
	if _, err := docs.Put("denial.txt", testDenialText); err != nil {
		t.Fatal(err)
	}

	reopened := newTestDocumentStore(t, path)
	list := reopened.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 documents after reload, got %d", len(list))
	}
	if list[0].Filename != "denial.txt" {
		t.Fatalf("expected upload order to survive reload, got %s first", list[0].Filename)
	}
	doc, ok := reopened.Get("policy.txt")
	if !ok {
		t.Fatal("expected policy.txt after reload")
	}
	if doc.Content != testPolicyText {
		t.Fatalf("content mismatch after reload: %q", doc.Content)
	}
	if doc.Category != CategoryPolicyDocument {
		t.Fatalf("category mismatch after reload: %s", doc.Category)
	}
}

func TestDocumentStoreMissingSnapshotStartsEmpty(t *testing.T) {
	docs := newTestDocumentStore(t, filepath.Join(t.TempDir(), "no-such-state.json"))
	if list := docs.List(); len(list) != 0 {
		t.Fatalf("expected empty store, got %d documents", len(list))
	}
}
