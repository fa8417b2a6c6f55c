package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPConfig configures the generic async inference API backend.
type HTTPConfig struct {
	Endpoint string
	APIKey   string
}

type httpClient struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPClient returns a Client backed by a remote asynchronous inference
// API: POST the job, get a job id back, receive the outcome on the callback
// URL later.
func NewHTTPClient(cfg HTTPConfig) Client {
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpClient) Name() string { return "inference-http" }

type submitPayload struct {
	Input       string `json:"input"`
	Headline    string `json:"headline,omitempty"`
	CallbackURL string `json:"callback_url"`
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

func (c *httpClient) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	body, err := json.Marshal(submitPayload{
		Input:       req.Text,
		Headline:    req.Headline,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submit payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build submit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("provider rejected submission: status %d: %s", resp.StatusCode, msg)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("provider accepted submission without a job id")
	}
	return out.JobID, nil
}
