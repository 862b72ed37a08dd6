// Package pinecone provides a VectorIndex adapter for the Pinecone REST API.
//
// The data plane host of an index is discovered once through the control
// plane and cached per index name, unless a host override is configured.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultControlURL = "https://api.pinecone.io"
	DefaultTimeout    = 30 * time.Second
	DefaultBatchSize  = 100
	APIVersion        = "2024-07"
)

const maxErrorBody = 512

// Config holds configuration for the Pinecone index adapter.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Host is the data plane host (e.g. "my-index-abc123.svc.pinecone.io").
	// When empty it is looked up from the control plane.
	Host string

	// Namespace partitions vectors within an index. Empty is the default namespace.
	Namespace string

	// ControlURL is the control plane base URL (default: https://api.pinecone.io).
	ControlURL string

	// BatchSize caps the number of vectors per upsert request (default: 100).
	BatchSize int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient replaces the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Index is a Pinecone-backed similarity index.
type Index struct {
	client     *http.Client
	apiKey     string
	controlURL string
	namespace  string
	batchSize  int
	override   string

	mu    sync.Mutex
	hosts map[string]string
}

type vector struct {
	ID     string    `json:"id"`
	Values []float32 `json:"values"`
}

type upsertRequest struct {
	Vectors   []vector `json:"vectors"`
	Namespace string   `json:"namespace,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeValues   bool      `json:"includeValues"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace,omitempty"`
}

type queryResponse struct {
	Matches []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
	} `json:"matches"`
}

type describeResponse struct {
	Name   string `json:"name"`
	Host   string `json:"host"`
	Status struct {
		Ready bool   `json:"ready"`
		State string `json:"state"`
	} `json:"status"`
}

// NewIndex creates a Pinecone index adapter.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("pinecone: API key is required")
	}
	if cfg.ControlURL == "" {
		cfg.ControlURL = DefaultControlURL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Index{
		client:     client,
		apiKey:     cfg.APIKey,
		controlURL: strings.TrimRight(cfg.ControlURL, "/"),
		namespace:  cfg.Namespace,
		batchSize:  cfg.BatchSize,
		override:   baseURL(cfg.Host),
		hosts:      make(map[string]string),
	}, nil
}

// Upsert writes records in batches. Existing identifiers are overwritten.
func (x *Index) Upsert(ctx context.Context, indexName string, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	host, err := x.host(ctx, indexName)
	if err != nil {
		return err
	}

	for start := 0; start < len(records); start += x.batchSize {
		end := min(start+x.batchSize, len(records))

		batch := make([]vector, 0, end-start)
		for _, r := range records[start:end] {
			batch = append(batch, vector{ID: r.ID, Values: r.Values})
		}

		var resp upsertResponse
		req := upsertRequest{Vectors: batch, Namespace: x.namespace}
		if err := x.do(ctx, http.MethodPost, host+"/vectors/upsert", req, &resp); err != nil {
			return fmt.Errorf("pinecone: upsert batch %d-%d: %w", start, end-1, err)
		}
		logger.Debug("pinecone: upserted %d vectors to %s", resp.UpsertedCount, indexName)
	}
	return nil
}

// Query returns the topK nearest identifiers with their scores.
func (x *Index) Query(ctx context.Context, indexName string, vec []float32, topK int) ([]domain.Match, error) {
	host, err := x.host(ctx, indexName)
	if err != nil {
		return nil, err
	}

	req := queryRequest{
		Vector:    vec,
		TopK:      topK,
		Namespace: x.namespace,
	}
	var resp queryResponse
	if err := x.do(ctx, http.MethodPost, host+"/query", req, &resp); err != nil {
		return nil, fmt.Errorf("pinecone: query: %w", err)
	}

	matches := make([]domain.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, domain.Match{ID: m.ID, Score: m.Score})
	}
	return matches, nil
}

// Close releases resources.
func (x *Index) Close() error {
	x.client.CloseIdleConnections()
	return nil
}

// host returns the data plane base URL for indexName.
func (x *Index) host(ctx context.Context, indexName string) (string, error) {
	if x.override != "" {
		return x.override, nil
	}

	x.mu.Lock()
	h, ok := x.hosts[indexName]
	x.mu.Unlock()
	if ok {
		return h, nil
	}

	var desc describeResponse
	endpoint := x.controlURL + "/indexes/" + url.PathEscape(indexName)
	if err := x.do(ctx, http.MethodGet, endpoint, nil, &desc); err != nil {
		return "", fmt.Errorf("pinecone: describe index %q: %w", indexName, err)
	}
	if desc.Host == "" {
		return "", fmt.Errorf("pinecone: index %q has no host", indexName)
	}
	if !desc.Status.Ready && desc.Status.State != "" {
		logger.Warn("pinecone: index %q is not ready (state %s)", indexName, desc.Status.State)
	}

	h = baseURL(desc.Host)
	x.mu.Lock()
	x.hosts[indexName] = h
	x.mu.Unlock()
	return h, nil
}

func (x *Index) do(ctx context.Context, method, endpoint string, in, out any) error {
	body := io.Reader(http.NoBody)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Api-Key", x.apiKey)
	req.Header.Set("X-Pinecone-API-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// baseURL adds https:// to a bare host.
func baseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return ""
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}
