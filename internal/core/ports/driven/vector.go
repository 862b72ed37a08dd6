package driven

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// VectorIndex is an external similarity index keyed by string identifiers.
// Upserts overwrite existing identifiers; there is no delete path.
type VectorIndex interface {
	// Upsert inserts or overwrites the given records in the named index.
	Upsert(ctx context.Context, indexName string, records []domain.VectorRecord) error

	// Query returns up to topK nearest records, highest score first.
	// Only identifiers and scores are returned.
	Query(ctx context.Context, indexName string, vector []float32, topK int) ([]domain.Match, error)

	// Close releases resources.
	Close() error
}
