package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend_PostsTextPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, false)
	if !n.Enabled() {
		t.Fatal("expected notifier to be enabled")
	}
	n.Send("hello from the pipeline")

	if got["text"] != "hello from the pipeline" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestSendf(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
	}))
	defer server.Close()

	NewNotifier(server.URL, false).Sendf("score %d/%d", 62, 70)
	if got["text"] != "score 62/70" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestSend_DisabledWithoutURL(t *testing.T) {
	n := NewNotifier("  ", false)
	if n.Enabled() {
		t.Error("expected blank webhook URL to disable the notifier")
	}
	// Must not panic or reach out anywhere
	n.Send("dropped")
}

func TestSend_SwallowsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusInternalServerError)
	}))
	defer server.Close()

	// Failure must be silent: Send has no error return
	NewNotifier(server.URL, false).Send("ignored")

	server.Close()
	NewNotifier(server.URL, false).Send("connection refused")
}
