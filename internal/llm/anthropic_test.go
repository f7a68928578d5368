package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicProvider_Generate(t *testing.T) {
	var gotReq anthropicRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		resp := anthropicResponse{Model: gotReq.Model}
		resp.Content = []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{{Type: "text", Text: "  <p>Generated.</p>  "}}
		resp.Usage.InputTokens = 10
		resp.Usage.OutputTokens = 20
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := provider.Generate(context.Background(), GenerateRequest{
		System: "sys",
		Prompt: "write a thing",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if resp.Text != "<p>Generated.</p>" {
		t.Errorf("text not trimmed: %q", resp.Text)
	}
	if resp.TokensUsed != 30 {
		t.Errorf("expected 30 tokens, got %d", resp.TokensUsed)
	}
	if gotReq.System != "sys" {
		t.Errorf("system instruction not sent: %q", gotReq.System)
	}
	if gotReq.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("unexpected default model: %s", gotReq.Model)
	}
}

func TestAnthropicProvider_JSONModeRestatesConstraint(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		resp := anthropicResponse{}
		resp.Content = []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{{Type: "text", Text: "{}"}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "p", JSONMode: true}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "strictly valid JSON") {
		t.Errorf("JSON constraint not restated in prompt: %q", gotReq.Messages[0].Content)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"bad key"}}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "bad", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = provider.Generate(context.Background(), GenerateRequest{Prompt: "p"})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "authentication_error") {
		t.Errorf("error lacks API detail: %v", err)
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("expected error for missing API key")
	}
}
