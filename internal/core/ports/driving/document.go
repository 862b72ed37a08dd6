package driving

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// DocumentService exposes the chunks of the reference document.
type DocumentService interface {
	// Chunks returns the current document split with the configured window.
	Chunks(ctx context.Context) ([]domain.Chunk, error)
}
