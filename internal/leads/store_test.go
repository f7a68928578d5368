package leads

import (
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "leads.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndListLeads(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.InsertLead(ctx, Lead{
		FName:          "Ada",
		Email:          "ada@example.com",
		SubmissionType: "audit",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	if _, err := s.InsertLead(ctx, Lead{
		FName:          "Grace",
		Email:          "grace@example.com",
		SubmissionType: "resource",
		ResourceSlug:   "cro-checklist",
	}); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	leads, err := s.ListLeads(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}

	// Newest first
	if leads[0].FName != "Grace" {
		t.Errorf("expected newest lead first, got %q", leads[0].FName)
	}
	if leads[0].ResourceSlug != "cro-checklist" {
		t.Errorf("unexpected resource slug: %q", leads[0].ResourceSlug)
	}
	if leads[1].ResourceSlug != "" {
		t.Errorf("audit lead should have empty resource slug, got %q", leads[1].ResourceSlug)
	}
	if leads[0].CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestListLeads_Limit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.InsertLead(ctx, Lead{
			FName:          "Lead",
			Email:          "lead@example.com",
			SubmissionType: "audit",
		}); err != nil {
			t.Fatal(err)
		}
	}

	leads, err := s.ListLeads(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 3 {
		t.Errorf("expected limit of 3, got %d", len(leads))
	}
}
