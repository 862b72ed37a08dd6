package driving

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ChatService answers questions grounded in the reference document.
type ChatService interface {
	// Ask runs the full query flow and returns the answer with its prompt.
	Ask(ctx context.Context, query string) (*domain.Answer, error)

	// Retrieve runs the query flow up to chunk resolution, without generation.
	Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error)
}
