package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
)

// Client talks to an external inference service for semantic keyword
// extraction. Everything statistical about keywords lives on the other side
// of this boundary.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.KeywordAnalyzer = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractKeywords sends the focus text for keyword inference.
func (c *Client) ExtractKeywords(ctx context.Context, text string) ([]domain.Keyword, error) {
	if c.http == nil || c.endpoint == "" {
		return nil, nil
	}

	payload := map[string]any{
		"text":  text,
		"top_n": 10,
	}

	var resp struct {
		Keywords []domain.Keyword `json:"keywords"`
	}
	if err := c.post(ctx, "/keywords", payload, &resp); err != nil {
		return nil, err
	}

	return resp.Keywords, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
