// Package openaiapi is the JSON-over-HTTP client shared by the OpenAI
// embedding and chat completion adapters. It owns authentication, the base
// URL and the decoding of API error envelopes; request and response shapes
// belong to the adapters.
package openaiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public OpenAI endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// maxErrorBody caps how much of a failed response is kept in an error.
const maxErrorBody = 512

// ErrMissingAPIKey is returned by New when no key is configured.
var ErrMissingAPIKey = errors.New("openai: API key is required")

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai error (status %d): %s", e.StatusCode, e.Message)
}

// Config configures a Client.
type Config struct {
	// APIKey is sent as a bearer token (required).
	APIKey string

	// BaseURL defaults to DefaultBaseURL. Any compatible endpoint works.
	BaseURL string

	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration

	// HTTPClient replaces the default client.
	HTTPClient *http.Client
}

// Client sends authenticated JSON requests.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends in as JSON to path and decodes a 200 response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return newAPIError(status, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ping lists models, which checks the key without running inference.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	body, status, err := c.do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	if status != http.StatusOK {
		return newAPIError(status, body)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// newAPIError prefers the message of an {"error": {...}} envelope and falls
// back to the truncated body.
func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return &APIError{StatusCode: status, Message: envelope.Error.Message}
	}
	return &APIError{StatusCode: status, Message: truncate(body)}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
