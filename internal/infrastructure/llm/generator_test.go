package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"PaperSummarizer/internal/config"
)

func generatorFor(srvURL string) *OpenAIGenerator {
	return NewOpenAIGenerator(config.OpenAIConfig{
		Endpoint: srvURL,
		Model:    "test-model",
		APIKey:   "test-key",
	})
}

func TestGenerateSummary(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "test-model" {
			t.Errorf("unexpected model %q", payload.Model)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Content != "condensed text" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"content":"  A fluent summary.  "}}]}`)
	}))
	t.Cleanup(srv.Close)

	got, err := generatorFor(srv.URL).GenerateSummary(context.Background(), "condensed text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A fluent summary." {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestGenerateSummaryErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	if _, err := generatorFor(srv.URL).GenerateSummary(context.Background(), "text"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestGenerateSummaryNoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	t.Cleanup(srv.Close)

	if _, err := generatorFor(srv.URL).GenerateSummary(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestGenerateSummaryMisconfigured(t *testing.T) {
	t.Parallel()

	g := NewOpenAIGenerator(config.OpenAIConfig{})
	if _, err := g.GenerateSummary(context.Background(), "text"); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
