package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"coverletter-backend/internal/llm"
)

func TestCoverLetterSendsPromptAndTrimsResponse(t *testing.T) {
	var mu sync.Mutex
	var lastBody map[string]any
	var lastAuth, lastPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		lastAuth = r.Header.Get("Authorization")
		lastPath = r.URL.Path
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"  Dear Hiring Manager,\n\nHello.  "}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "gpt-4o-mini"})
	out, err := client.CoverLetter(context.Background(), "resume text", "job text")
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	if out != "Dear Hiring Manager,\n\nHello." {
		t.Fatalf("unexpected output: %q", out)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path: %s", lastPath)
	}
	if lastAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", lastAuth)
	}
	if lastBody["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", lastBody["model"])
	}
	if temp, _ := lastBody["temperature"].(float64); temp < 0.69 || temp > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", lastBody["temperature"])
	}
	if lastBody["max_tokens"] != float64(llm.MaxTokens) {
		t.Fatalf("expected max_tokens %d, got %v", llm.MaxTokens, lastBody["max_tokens"])
	}
	msgs, _ := lastBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "resume text") || !strings.Contains(content, "job text") {
		t.Fatalf("user prompt missing inputs: %q", content)
	}
}

func TestCoverLetterWithoutKeyMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "  ", BaseURL: server.URL})
	if client.Configured() {
		t.Fatalf("expected unconfigured client")
	}
	_, err := client.CoverLetter(context.Background(), "resume", "jd")
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestCoverLetterUpstreamErrorIsSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.CoverLetter(context.Background(), "resume", "jd")
	if !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if !strings.Contains(err.Error(), "Rate limit reached") {
		t.Fatalf("expected upstream detail in error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls.Load())
	}
}

func TestCoverLetterMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.CoverLetter(context.Background(), "resume", "jd")
	if !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestNewClientDefaultsModel(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if client.model != llm.DefaultModel {
		t.Fatalf("expected default model, got %s", client.model)
	}
}
