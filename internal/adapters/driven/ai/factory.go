// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	openaiembed "github.com/custodia-labs/resumechat/internal/adapters/driven/embedding/openai"
	openaillm "github.com/custodia-labs/resumechat/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the OpenAI embedding service from settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding.api_key is not set (export OPENAI_API_KEY or run 'resumechat config set embedding.api_key ...')",
			domain.ErrInvalidConfiguration)
	}

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// CreateLLMService creates the OpenAI chat completion service from settings.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: llm.api_key is not set (export OPENAI_API_KEY or run 'resumechat config set llm.api_key ...')",
			domain.ErrInvalidConfiguration)
	}

	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

// Pinger is any service with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks connectivity of every service, stopping at the first failure.
func Ping(ctx context.Context, services map[string]Pinger) error {
	for name, svc := range services {
		if svc == nil {
			continue
		}
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := svc.Ping(pctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s unreachable: %w", name, err)
		}
	}
	return nil
}
