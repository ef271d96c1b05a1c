// Package nlp talks to the external sentiment inference service.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// ModelVersion tags persisted records with the scoring model in use.
const ModelVersion = "finbert_v1_base"

// Client scores headline sentiment against a FinBERT inference service.
// It is constructed once at wiring time so a misconfigured or unreachable
// service surfaces before the first run, not on the first call.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.Scorer = (*Client)(nil)

// NewClient creates a reusable HTTP client against the inference endpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Score classifies one headline. Any transport failure, non-200 status, or
// response without a label comes back as an error; the caller skips the item
// and continues the run.
func (c *Client) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	if c.endpoint == "" {
		return domain.Sentiment{}, fmt.Errorf("scorer endpoint not configured")
	}

	payload := map[string]string{"text": text}

	var resp struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.post(ctx, "/score", payload, &resp); err != nil {
		return domain.Sentiment{}, err
	}

	sentiment := domain.Sentiment{Label: resp.Label, Score: resp.Score}
	if !sentiment.Usable() {
		return domain.Sentiment{}, fmt.Errorf("scorer returned no label")
	}
	return sentiment, nil
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

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
