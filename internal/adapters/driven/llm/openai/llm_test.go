package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/openaiapi"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", svc.ModelName())
	assert.Equal(t, openaiapi.DefaultBaseURL, svc.api.BaseURL())
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.ErrorIs(t, err, openaiapi.ErrMissingAPIKey)
}

func TestComplete_SendsMessagesAndReturnsFirstChoice(t *testing.T) {
	var got chatCompletionRequest
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[
			{"message":{"content":"  Five years of Go.\n"},"finish_reason":"stop"},
			{"message":{"content":"ignored"}}
		]}`))
	})

	out, err := svc.Complete(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "be helpful"},
		{Role: driven.RoleUser, Content: "experience?"},
	}, driven.CompletionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "  Five years of Go.\n", out, "completion must be returned verbatim")
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatCompletionMsg{Role: "system", Content: "be helpful"}, got.Messages[0])
	assert.Equal(t, chatCompletionMsg{Role: "user", Content: "experience?"}, got.Messages[1])
	assert.Zero(t, got.MaxTokens)
}

func TestComplete_Options(t *testing.T) {
	var raw map[string]any
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"},"finish_reason":"length"}]}`))
	})

	out, err := svc.Complete(context.Background(), userMessage("hello"), driven.CompletionOptions{
		MaxTokens:   64,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 64, raw["max_tokens"])
	assert.InDelta(t, 0.2, raw["temperature"], 1e-9)
}

func TestComplete_ZeroOptionsOmitted(t *testing.T) {
	var raw map[string]any
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := svc.Complete(context.Background(), userMessage("hello"), driven.CompletionOptions{})
	require.NoError(t, err)

	assert.NotContains(t, raw, "max_tokens")
	assert.NotContains(t, raw, "temperature")
}

func userMessage(content string) []driven.ChatMessage {
	return []driven.ChatMessage{{Role: driven.RoleUser, Content: content}}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, "Incorrect API key"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no response choices"},
		{"html error page", http.StatusServiceUnavailable, `<html>down</html>`, "status 503"},
		{"bad json", http.StatusOK, `{`, "decode response"},
		{"status without error object", http.StatusTooManyRequests, `{"choices":[]}`, "status 429"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Complete(context.Background(), userMessage("q"), driven.CompletionOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestComplete_NoMessages(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "k"})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), nil, driven.CompletionOptions{})
	assert.Error(t, err)
}

func TestComplete_ContextCancelled(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Complete(ctx, userMessage("q"), driven.CompletionOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	status := http.StatusOK
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(status)
	})

	assert.NoError(t, svc.Ping(context.Background()))

	status = http.StatusForbidden
	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.NoError(t, svc.Close())
}
