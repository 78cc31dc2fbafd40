package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestOpenAICompatClientSuccess(t *testing.T) {
	var gotPayload chatPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("Thanks for the kind words!")))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, APIKey: "test-key", Timeout: 5 * time.Second}
	got, err := client.Complete(context.Background(), Request{
		Model:       "gpt-4o",
		System:      "You are responding as a business.",
		Prompt:      "Write a reply.",
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Thanks for the kind words!" {
		t.Fatalf("got %q", got)
	}
	if gotPayload.Model != "gpt-4o" || gotPayload.MaxTokens != 300 {
		t.Fatalf("payload not forwarded: %+v", gotPayload)
	}
	if len(gotPayload.Messages) != 2 || gotPayload.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %+v", gotPayload.Messages)
	}
	if gotPayload.ResponseFormat != nil {
		t.Fatal("free-text request must not set response_format")
	}
}

func TestOpenAICompatClientJSONMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload chatPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat["type"] != "json_object" {
			t.Errorf("expected json_object response_format, got %v", payload.ResponseFormat)
		}
		w.Write([]byte(completionBody(`{"sentiment":"positive"}`)))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second}
	if _, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "Analyze.", JSONOutput: true}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestOpenAICompatClientCachesStructuredCalls(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(completionBody(`{"sentiment":"positive"}`)))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second, Cache: NewMemoryCache(time.Minute)}
	req := Request{Model: "gpt-4o", Prompt: "Analyze.", JSONOutput: true}

	for i := 0; i < 3; i++ {
		if _, err := client.Complete(context.Background(), req); err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("expected one upstream call for identical structured requests, got %d", n)
	}
}

func TestOpenAICompatClientRetriesServerErrors(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("recovered")))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 2}
	got, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "Write a reply."})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("got %q", got)
	}
	if n := atomic.LoadInt64(&hits); n != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", n)
	}
}

func TestOpenAICompatClientDoesNotRetryClientErrors(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 3}
	_, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "Write a reply."})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var me *ModelError
	if !errors.As(err, &me) {
		t.Fatalf("expected ModelError, got %T", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("4xx must not be retried, got %d upstream calls", n)
	}
}

func TestOpenAICompatClientRateLimit(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"details":[{"@type":"type.googleapis.com/google.rpc.RetryInfo","retryDelay":"3s"}]}}`))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 3}
	_, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "Write a reply."})

	var rle RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rle.RetryAfter != 3*time.Second {
		t.Fatalf("expected retry-after 3s, got %s", rle.RetryAfter)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("rate-limited call must surface immediately, got %d upstream calls", n)
	}
}

func TestOpenAICompatClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := OpenAICompatClient{BaseURL: srv.URL, Timeout: 5 * time.Second}
	_, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "Write a reply."})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAICompatClientRequiresConfig(t *testing.T) {
	client := OpenAICompatClient{}
	if _, err := client.Complete(context.Background(), Request{Model: "gpt-4o", Prompt: "x"}); err == nil {
		t.Fatal("expected error without base URL")
	}
	client.BaseURL = "http://localhost:1"
	if _, err := client.Complete(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error without model")
	}
}
