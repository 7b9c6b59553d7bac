package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "llama-3.3-70b-versatile")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client, srv
}

func TestGenerateReturnsContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "llama-3.3-70b-versatile" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if req.ResponseFormat != nil {
			t.Errorf("expected no response_format for plain text request")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Improved summary.  "}}]}`))
	})

	got, err := client.Generate(context.Background(), llm.Request{System: "sys", User: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Improved summary." {
		t.Fatalf("expected trimmed content, got %q", got)
	}
}

func TestGenerateJSONModeSetsResponseFormat(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response_format, got %+v", req.ResponseFormat)
		}
		if req.Temperature == nil || *req.Temperature != 0 {
			t.Errorf("expected zero temperature in JSON mode")
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"score\":80}"}}]}`))
	})

	got, err := client.Generate(context.Background(), llm.Request{User: "jd", JSONMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"score":80}` {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestGenerateProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit reached","type":"rate_limit_exceeded"}}`))
	})

	_, err := client.Generate(context.Background(), llm.Request{User: "text"})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if !strings.Contains(err.Error(), "rate limit reached") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
	})

	_, err := client.Generate(context.Background(), llm.Request{User: "text"})
	if err == nil || !strings.Contains(err.Error(), "empty content") {
		t.Fatalf("expected empty content error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}
