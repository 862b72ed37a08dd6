// Package openai provides an LLM service adapter using the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/openaiapi"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/logger"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultLLMModel   = "gpt-4o"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig selects the chat model and endpoint. Only APIKey is required.
type LLMConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// LLMService answers prompts with the /chat/completions endpoint.
type LLMService struct {
	api   *openaiapi.Client
	model string
}

type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatCompletionMsg `json:"message"`
		FinishReason string            `json:"finish_reason"`
	} `json:"choices"`
}

// NewLLMService creates a new OpenAI LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	api, err := openaiapi.New(openaiapi.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return &LLMService{api: api, model: cfg.Model}, nil
}

// Complete sends messages to /chat/completions and returns the first
// choice's content verbatim.
func (s *LLMService) Complete(ctx context.Context, messages []driven.ChatMessage, opts driven.CompletionOptions) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("openai: at least one message is required")
	}

	req := chatCompletionRequest{
		Model:       s.model,
		Messages:    make([]chatCompletionMsg, len(messages)),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	for i, m := range messages {
		req.Messages[i] = chatCompletionMsg{Role: m.Role, Content: m.Content}
	}

	var resp chatCompletionResponse
	if err := s.api.Post(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no response choices returned")
	}
	if resp.Choices[0].FinishReason == "length" {
		logger.Warn("openai: completion truncated at the token limit (model %s)", s.model)
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks the API key against the /models endpoint.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

// Close releases idle connections.
func (s *LLMService) Close() error {
	s.api.Close()
	return nil
}
