package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		Model: "llama3",
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: openai.FinishReasonStop,
		}},
	})
}

// TestGenerate verifies the chat completion request sent to Ollama and that
// the reply text is returned unchanged.
func TestGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeCompletion(w, "Bench Press")
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "llama3", 5*time.Second, 0)
	text, err := c.Generate(context.Background(), "pick one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Bench Press" {
		t.Errorf("text = %q, want %q", text, "Bench Press")
	}
	if got.Model != "llama3" || got.Stream {
		t.Errorf("request model = %q, stream = %v, want llama3 and false", got.Model, got.Stream)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != openai.ChatMessageRoleUser || got.Messages[0].Content != "pick one" {
		t.Errorf("messages = %+v, want one user message %q", got.Messages, "pick one")
	}
}

// TestNewClientKeepsV1Suffix verifies a base URL that already ends in /v1 is
// not doubled.
func TestNewClientKeepsV1Suffix(t *testing.T) {
	c := NewClient("http://ollama:11434/v1/", "llama3", time.Second, 0)
	if c.baseURL != "http://ollama:11434/v1" {
		t.Errorf("baseURL = %q, want http://ollama:11434/v1", c.baseURL)
	}
}

// TestGenerateRetriesServerError verifies that a 5xx is retried and a later
// success is returned.
func TestGenerateRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3", 5*time.Second, 1)
	text, err := c.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Errorf("text = %q, want ok", text)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

// TestGenerateClientErrorNotRetried verifies that a 4xx fails immediately.
func TestGenerateClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"model \"nope\" not found","type":"api_error"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "nope", 5*time.Second, 3)
	if _, err := c.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error for 404")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

// TestGenerateNoChoices verifies that an empty completion is an error.
func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","model":"llama3","choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3", 5*time.Second, 0)
	if _, err := c.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

// TestGenerateCancelled verifies a cancelled context stops the call.
func TestGenerateCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "late")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "llama3", 5*time.Second, 2)
	if _, err := c.Generate(ctx, "p"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
