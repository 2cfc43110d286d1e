package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientConfig configures the completion endpoint client. These are
// process-wide model parameters, not per-call options.
type ClientConfig struct {
	// BaseURL is the completion endpoint. Default: the local LM Studio
	// server.
	BaseURL string `yaml:"base_url"`

	// Model is the model identifier sent with every request.
	Model string `yaml:"model"`

	// MaxTokens bounds each generated response. Default: 500.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for generation. Default: 0.7.
	Temperature float64 `yaml:"temperature"`

	// Timeout per HTTP call. Default: 120s; local models are slow.
	Timeout time.Duration `yaml:"timeout"`
}

func (c *ClientConfig) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://127.0.0.1:1234/v1/completions"
	}
	if c.Model == "" {
		c.Model = "gemma-3-27b-it-qat"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 500
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
}

// Client calls a local text-completion endpoint. It implements Completer.
type Client struct {
	cfg    ClientConfig
	client *http.Client
}

// NewClient creates a completion client.
func NewClient(cfg ClientConfig) *Client {
	cfg.defaults()
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete posts the prompt and returns the first choice's text.
// Transport failures, non-2xx statuses, and responses without choices
// are all errors; the caller decides whether they abort a run.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("insight: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("insight: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight: completion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("insight: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("insight: completion endpoint: http %d: %s", resp.StatusCode, truncate(data, 200))
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("insight: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("insight: no content returned from model")
	}
	return parsed.Choices[0].Text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
