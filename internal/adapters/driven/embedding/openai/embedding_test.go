package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/openaiapi"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc, cfg Config) *EmbeddingService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	if cfg.APIKey == "" {
		cfg.APIKey = "sk-test"
	}
	svc, err := NewEmbeddingService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, "text-embedding-ada-002", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
	assert.Equal(t, openaiapi.DefaultBaseURL, svc.api.BaseURL())
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.ErrorIs(t, err, openaiapi.ErrMissingAPIKey)
}

func TestNewEmbeddingService_Dimensions(t *testing.T) {
	tests := []struct {
		model string
		dims  int
		want  int
	}{
		{"text-embedding-3-large", 0, 3072},
		{"text-embedding-3-small", 512, 512},
		{"custom-model", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			svc, err := NewEmbeddingService(Config{APIKey: "k", Model: tt.model, Dimensions: tt.dims})
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.Dimensions())
		})
	}
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	var got embeddingRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"data":[
			{"index":1,"embedding":[0.0,1.0]},
			{"index":0,"embedding":[1.0,0.0]}
		]}`))
	}, Config{})

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vecs)
	assert.Equal(t, "text-embedding-ada-002", got.Model)
	assert.Equal(t, []string{"first", "second"}, got.Input)
	assert.Zero(t, got.Dimensions, "ada-002 does not accept a dimensions parameter")
}

func TestEmbedBatch_SendsDimensionsForV3(t *testing.T) {
	var got embeddingRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1]}]}`))
	}, Config{Model: "text-embedding-3-small", Dimensions: 256})

	_, err := svc.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 256, got.Dimensions)
}

func TestEmbed_Single(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.25,0.5,0.75]}]}`))
	}, Config{})

	vec, err := svc.Embed(context.Background(), "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, 0.75}, vec)
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "k"})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestEmbedBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api error object", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, "Incorrect API key"},
		{"non-json error", http.StatusBadGateway, `<html>bad gateway</html>`, "status 502"},
		{"bad json on success", http.StatusOK, `{not json`, "decode response"},
		{"missing embedding", http.StatusOK, `{"data":[]}`, "no embedding returned"},
		{"index out of range", http.StatusOK, `{"data":[{"index":3,"embedding":[1]}]}`, "out of range"},
		{"status without body", http.StatusTooManyRequests, `{}`, "status 429"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, Config{})

			_, err := svc.Embed(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestEmbedBatch_TruncatesLongErrorBodies(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}, Config{})

	_, err := svc.Embed(context.Background(), "x")
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 700)
}

func TestEmbed_ContextCancelled(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1]}]}`))
	}, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Embed(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`unauthorized`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}

	svc := newTestService(t, handler, Config{APIKey: "good"})
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())

	svc = newTestService(t, handler, Config{APIKey: "bad"})
	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.EmbeddingService = (*EmbeddingService)(nil)
}
