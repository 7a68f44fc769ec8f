package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/keywords" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}

		var payload struct {
			Text string `json:"text"`
			TopN int    `json:"top_n"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Text != "focus text" || payload.TopN != 10 {
			t.Errorf("unexpected payload: %+v", payload)
		}

		fmt.Fprint(w, `{"keywords":[{"phrase":"entanglement","score":0.93},{"phrase":"calibration","score":0.71}]}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret")
	keywords, err := client.ExtractKeywords(context.Background(), "focus text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(keywords) != 2 || keywords[0].Phrase != "entanglement" || keywords[1].Score != 0.71 {
		t.Fatalf("unexpected keywords: %+v", keywords)
	}
}

func TestExtractKeywordsErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	if _, err := NewClient(srv.URL, "").ExtractKeywords(context.Background(), "text"); err == nil {
		t.Fatal("expected error for server failure")
	}
}
