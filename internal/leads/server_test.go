package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/notify"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := model.DefaultConfig().Leads
	return NewServer(cfg, testStore(t), nil, notify.NewNotifier("", false))
}

func postJSON(t *testing.T, s *Server, path, body string) (*httptest.ResponseRecorder, leadResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	var resp leadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequestAudit_Valid(t *testing.T) {
	s := testServer(t)
	rec, resp := postJSON(t, s, "/api/request-audit",
		`{"fname": "Ada", "email": "ada@example.com"}`)

	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("expected success, got %d %+v", rec.Code, resp)
	}

	leads, err := s.store.ListLeads(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 1 || leads[0].SubmissionType != "audit" {
		t.Errorf("lead not persisted: %+v", leads)
	}
}

func TestRequestAudit_Validation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing fname", `{"email": "ada@example.com"}`, "First name required"},
		{"blank fname", `{"fname": "  ", "email": "ada@example.com"}`, "First name required"},
		{"missing email", `{"fname": "Ada"}`, "Invalid email"},
		{"bad email", `{"fname": "Ada", "email": "not-an-email"}`, "Invalid email"},
		{"bad body", `{"fname": `, "Invalid request body"},
	}

	for _, tt := range tests {
		rec, resp := postJSON(t, s, "/api/request-audit", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
		if resp.Error != tt.wantErr {
			t.Errorf("%s: expected error %q, got %q", tt.name, tt.wantErr, resp.Error)
		}
	}
}

func TestDownloadResource(t *testing.T) {
	s := testServer(t)
	rec, resp := postJSON(t, s, "/api/download-resource",
		`{"fname": "Ada", "email": "ada@example.com", "resource": "cro-checklist"}`)

	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("expected success, got %d %+v", rec.Code, resp)
	}
	if !strings.HasSuffix(resp.DownloadURL, ".pdf") {
		t.Errorf("expected pdf download url, got %q", resp.DownloadURL)
	}
	if !strings.HasPrefix(resp.DownloadURL, "/static/resources/") {
		t.Errorf("unexpected download url base: %q", resp.DownloadURL)
	}

	leads, err := s.store.ListLeads(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 1 || leads[0].ResourceSlug != "cro-checklist" {
		t.Errorf("resource lead not persisted: %+v", leads)
	}
}

func TestDownloadResource_Unknown(t *testing.T) {
	s := testServer(t)
	rec, resp := postJSON(t, s, "/api/download-resource",
		`{"fname": "Ada", "email": "ada@example.com", "resource": "no-such-thing"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if resp.Error != "Unknown resource" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}
